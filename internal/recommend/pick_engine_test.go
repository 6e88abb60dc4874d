package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/recommend"
)

func TestPickRecommendationEngine_GetRecommendations(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"player_proficiency.json": map[string]any{
			"Faker": map[string]any{
				"Azir": map[string]any{"games_raw": 10, "win_rate": 0.8},
			},
		},
		"meta_stats.json": map[string]any{
			"Azir": map[string]any{"meta_score": 0.9},
		},
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Azir": map[string]any{"canonical_role": "MID"},
			},
		},
	})
	flex := recommend.NewFlexResolver(store)
	engine := recommend.NewPickRecommendationEngine(store, flex)

	team := []recommend.RosterPlayer{{Name: "Faker", Role: domain.RoleMid}}
	recs := engine.GetRecommendations(team, nil, nil, nil, 5)

	require.NotEmpty(t, recs)
	var azir *recommend.PickRecommendation
	for i := range recs {
		if recs[i].Champion == "Azir" {
			azir = &recs[i]
		}
	}
	require.NotNil(t, azir, "Azir should surface from the player's proficiency pool")
	assert.Equal(t, domain.RoleMid, azir.SuggestedRole)
	assert.Equal(t, "Faker", azir.ProficiencyPlayer)
	assert.Greater(t, azir.TotalScore, 0.0)
	assert.Contains(t, azir.Reasons, "S-tier meta pick")
}

func TestPickRecommendationEngine_ExcludesUnavailableChampions(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"player_proficiency.json": map[string]any{
			"Faker": map[string]any{
				"Azir": map[string]any{"games_raw": 10, "win_rate": 0.8},
			},
		},
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Azir": map[string]any{"canonical_role": "MID"},
			},
		},
	})
	flex := recommend.NewFlexResolver(store)
	engine := recommend.NewPickRecommendationEngine(store, flex)
	team := []recommend.RosterPlayer{{Name: "Faker", Role: domain.RoleMid}}

	banned := engine.GetRecommendations(team, nil, nil, []string{"Azir"}, 5)
	for _, r := range banned {
		assert.NotEqual(t, "Azir", r.Champion)
	}

	alreadyPicked := engine.GetRecommendations(team, []string{"Azir"}, nil, nil, 5)
	for _, r := range alreadyPicked {
		assert.NotEqual(t, "Azir", r.Champion)
	}
}

func TestRoleGrouped(t *testing.T) {
	recs := []recommend.PickRecommendation{
		{Champion: "Azir", SuggestedRole: domain.RoleMid, TotalScore: 0.9},
		{Champion: "Yone", SuggestedRole: domain.RoleMid, TotalScore: 0.8},
		{Champion: "Caitlyn", SuggestedRole: domain.RoleBot, TotalScore: 0.7},
	}
	grouped := recommend.RoleGrouped(recs, 1)

	assert.Len(t, grouped[domain.RoleMid], 1, "capped at limitPerRole")
	assert.Equal(t, "Azir", grouped[domain.RoleMid][0].Champion)
	assert.Len(t, grouped[domain.RoleBot], 1)
}
