package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wutims/draftengine/internal/recommend"
)

func TestArchetypeService_GetChampionArchetypes(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Malphite": map[string]any{
					"archetype_scores": map[string]any{"engage": 0.8, "teamfight": 0.6},
				},
			},
		},
	})
	svc := recommend.NewArchetypeService(store)

	profile := svc.GetChampionArchetypes("Malphite")
	assert.Equal(t, "engage", profile.Primary)
	assert.Equal(t, "teamfight", profile.Secondary)
	assert.Equal(t, 0.8, profile.Alignment)

	unknown := svc.GetChampionArchetypes("Nobody")
	assert.Equal(t, "", unknown.Primary)
}

func TestArchetypeService_GetContributionToArchetype(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Malphite": map[string]any{
					"archetype_scores": map[string]any{"engage": 0.8, "teamfight": 0.2},
				},
			},
		},
	})
	svc := recommend.NewArchetypeService(store)

	assert.InDelta(t, 0.8, svc.GetContributionToArchetype("Malphite", "engage"), 1e-9)
	assert.InDelta(t, 0.2, svc.GetContributionToArchetype("Malphite", "teamfight"), 1e-9)
	assert.Equal(t, 0.0, svc.GetContributionToArchetype("Nobody", "engage"))
}

func TestArchetypeService_CalculateCompAdvantage(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Malphite": map[string]any{"archetype_scores": map[string]any{"engage": 0.9}},
				"Kayle":    map[string]any{"archetype_scores": map[string]any{"split": 0.9}},
			},
		},
		"archetype_counters.json": map[string]any{
			"counters": map[string]any{
				"engage": map[string]any{"split": 1.3},
			},
		},
	})
	svc := recommend.NewArchetypeService(store)

	adv := svc.CalculateCompAdvantage([]string{"Malphite"}, []string{"Kayle"})
	assert.Equal(t, "engage", adv.OurArchetype)
	assert.Equal(t, "split", adv.EnemyArchetype)
	assert.Equal(t, 1.3, adv.Advantage)
	assert.Contains(t, adv.Description, "favors us")

	unclear := svc.CalculateCompAdvantage([]string{"Nobody"}, []string{"Kayle"})
	assert.Equal(t, 1.0, unclear.Advantage)
}
