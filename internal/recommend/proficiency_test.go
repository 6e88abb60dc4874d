package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
	"github.com/wutims/draftengine/internal/recommend"
)

func TestProficiencyScorer_GetProficiencyScore(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"player_proficiency.json": map[string]any{
			"Faker": map[string]any{
				"Azir": map[string]any{"games_raw": 10, "win_rate": 0.7},
			},
		},
	})
	scorer := recommend.NewProficiencyScorer(store)

	score, conf := scorer.GetProficiencyScore("Faker", "Azir")
	assert.InDelta(t, 0.6*0.7+0.4*1.0, score, 1e-9)
	assert.Equal(t, knowledge.ConfidenceHigh, conf)

	score, conf = scorer.GetProficiencyScore("Faker", "Nobody")
	assert.Equal(t, 0.5, score)
	assert.Equal(t, knowledge.ConfidenceNoData, conf)
}

func TestProficiencyScorer_GetRoleProficiencyWithTransfer(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"player_proficiency.json": map[string]any{
			"Faker": map[string]any{
				"Azir": map[string]any{"games_raw": 9, "win_rate": 0.8},
			},
		},
		"skill_transfer.json": map[string]any{
			"Yone": []map[string]any{
				{"champion": "Azir", "co_play_rate": 0.6},
			},
		},
	})
	scorer := recommend.NewProficiencyScorer(store)

	score, conf, source := scorer.GetRoleProficiencyWithTransfer("Faker", "Yone")
	t.Logf("transfer blend: score=%v conf=%v source=%v", score, conf, source)
	assert.Equal(t, recommend.TransferTransfer, source)
	assert.Equal(t, knowledge.ConfidenceNoData, conf, "confidence reported is the direct champion's own bucket")
	assert.Greater(t, score, 0.5, "blend pulls the neutral baseline toward Azir's strong win rate")
}

func TestProficiencyScorer_CalculateRoleStrength(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"player_proficiency.json": map[string]any{
			"Faker": map[string]any{
				"Azir": map[string]any{"games_raw": 10, "win_rate": 0.6},
				"Yone": map[string]any{"games_raw": 10, "win_rate": 0.4},
			},
		},
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Azir": map[string]any{"canonical_role": "MID"},
				"Yone": map[string]any{"canonical_role": "MID"},
			},
		},
	})
	scorer := recommend.NewProficiencyScorer(store)

	strength, ok := scorer.CalculateRoleStrength("Faker", domain.RoleMid)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, strength, 1e-9, "equal weight average of 0.6 and 0.4")

	_, ok = scorer.CalculateRoleStrength("Nobody", domain.RoleMid)
	assert.False(t, ok)
}
