package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
	"github.com/wutims/draftengine/internal/recommend"
)

func loadStoreWithFixtures(t *testing.T, files map[string]any) *knowledge.Store {
	t.Helper()
	dir := t.TempDir()
	for name, v := range files {
		writeJSONFixture(t, dir, name, v)
	}
	store, err := knowledge.Load(dir)
	require.NoError(t, err)
	return store
}

func TestMetaScorer_GetMetaScore(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"meta_stats.json": map[string]any{
			"Azir": map[string]any{
				"pick_rate":  0.2,
				"ban_rate":   0.1,
				"meta_tier":  "S",
				"meta_score": 0.8,
			},
		},
	})
	scorer := recommend.NewMetaScorer(store)

	cases := []struct {
		name     string
		champion string
		method   recommend.MetaMethod
		want     float64
	}{
		{"unknown champion is neutral", "Nobody", recommend.MetaMethodDefault, 0.5},
		{"default method returns stored meta_score", "Azir", recommend.MetaMethodDefault, 0.8},
		{"presence method derives from pick+ban rate", "Azir", recommend.MetaMethodPresence, 0.3 + 0.3*0.7},
		{"hybrid method averages the two", "Azir", recommend.MetaMethodHybrid, (0.8 + (0.3 + 0.3*0.7)) / 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scorer.GetMetaScore(tc.champion, tc.method)
			t.Logf("%s/%s = %v", tc.champion, tc.method, got)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestMetaScorer_GetMetaTier(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"meta_stats.json": map[string]any{
			"Azir": map[string]any{"meta_tier": "S"},
		},
		"tournament_meta.json": map[string]any{
			"Yone": map[string]any{"priority": 0.55},
		},
	})
	scorer := recommend.NewMetaScorer(store)

	assert.Equal(t, "S", scorer.GetMetaTier("Azir"), "explicit meta_stats tier wins")
	assert.Equal(t, "A", scorer.GetMetaTier("Yone"), "falls back to priority-derived tier")
	assert.Equal(t, "D", scorer.GetMetaTier("Nobody"), "unknown champion defaults to D")
}

func TestMetaScorer_GetBlindPickSafety(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"meta_stats.json": map[string]any{
			"Yasuo":  map[string]any{"counter_pick_dependent": true},
			"Malphite": map[string]any{"blind_pick_safety": 0.7},
		},
	})
	scorer := recommend.NewMetaScorer(store)

	assert.Equal(t, 0.85, scorer.GetBlindPickSafety("Yasuo"), "counter-dependent champions capped at 0.85")
	assert.InDelta(t, 0.9+(0.7-0.5)*0.4, scorer.GetBlindPickSafety("Malphite"), 1e-9)
	assert.Equal(t, 1.0, scorer.GetBlindPickSafety("Nobody"), "unknown champion defaults safe")
}

func TestMetaScorer_GetTopMetaChampions(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"meta_stats.json": map[string]any{
			"Azir":   map[string]any{"meta_score": 0.9},
			"Yone":   map[string]any{"meta_score": 0.4},
			"Sylas":  map[string]any{"meta_score": 0.6},
		},
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Azir":  map[string]any{"current_viable_roles": []string{"MID"}},
				"Yone":  map[string]any{"current_viable_roles": []string{"MID"}},
				"Sylas": map[string]any{"current_viable_roles": []string{"MID"}},
			},
		},
	})
	scorer := recommend.NewMetaScorer(store)

	top := scorer.GetTopMetaChampions(domain.RoleMid, 2)
	require.Len(t, top, 2)
	assert.Equal(t, []string{"Azir", "Sylas"}, top, "sorted descending by meta score, limited to 2")
}
