package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/recommend"
)

func newTestBanService(t *testing.T, rosterOf recommend.RosterLookup) *recommend.BanRecommendationService {
	t.Helper()
	store := loadStoreWithFixtures(t, map[string]any{
		"player_proficiency.json": map[string]any{
			"Faker": map[string]any{
				"Azir": map[string]any{"games_raw": 20, "win_rate": 0.7},
			},
		},
		"tournament_meta.json": map[string]any{
			"Azir": map[string]any{"priority": 0.8},
			"Yone": map[string]any{"priority": 0.2},
		},
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Azir": map[string]any{"canonical_role": "MID"},
			},
		},
	})
	flex := recommend.NewFlexResolver(store)
	tournament := recommend.NewTournamentScorer(store)
	return recommend.NewBanRecommendationService(store, flex, tournament, rosterOf)
}

func TestBanRecommendationService_PlayerTargetedAndGlobalPower(t *testing.T) {
	svc := newTestBanService(t, nil)
	enemyPlayers := []recommend.RosterPlayer{{Name: "Faker", Role: domain.RoleMid}}

	recs := svc.GetBanRecommendations("enemy-team", nil, nil, nil, recommend.PhaseBan1, enemyPlayers, 10)
	require.NotEmpty(t, recs)

	var azir *recommend.BanRecommendation
	for i := range recs {
		if recs[i].Champion == "Azir" {
			azir = &recs[i]
		}
	}
	require.NotNil(t, azir, "Azir should surface as a player-targeted candidate")
	assert.Equal(t, "Faker", azir.TargetPlayer)
	assert.Greater(t, azir.Priority, 0.0)
}

func TestBanRecommendationService_RosterLookupFallback(t *testing.T) {
	called := false
	rosterOf := func(teamID string) ([]recommend.RosterPlayer, bool) {
		called = true
		assert.Equal(t, "enemy-team", teamID)
		return []recommend.RosterPlayer{{Name: "Faker", Role: domain.RoleMid}}, true
	}
	svc := newTestBanService(t, rosterOf)

	recs := svc.GetBanRecommendations("enemy-team", nil, nil, nil, recommend.PhaseBan1, nil, 10)
	assert.True(t, called, "rosterOf should be consulted when no explicit enemy players are passed")
	assert.NotEmpty(t, recs)
}

func TestBanRecommendationService_ExcludesUnavailable(t *testing.T) {
	svc := newTestBanService(t, nil)
	enemyPlayers := []recommend.RosterPlayer{{Name: "Faker", Role: domain.RoleMid}}

	recs := svc.GetBanRecommendations("enemy-team", nil, nil, []string{"Azir"}, recommend.PhaseBan1, enemyPlayers, 10)
	for _, r := range recs {
		assert.NotEqual(t, "Azir", r.Champion)
	}
}

func TestBanRecommendationService_RespectsLimit(t *testing.T) {
	svc := newTestBanService(t, nil)
	enemyPlayers := []recommend.RosterPlayer{{Name: "Faker", Role: domain.RoleMid}}

	recs := svc.GetBanRecommendations("enemy-team", nil, nil, nil, recommend.PhaseBan1, enemyPlayers, 1)
	assert.Len(t, recs, 1)
}
