package draftsvc_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/draftsvc"
	"github.com/wutims/draftengine/internal/knowledge"
)

func writeJSONFixture(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

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

func TestQualityAnalyzer_AnalyzeQuality_EmptyPicks(t *testing.T) {
	store := loadStoreWithFixtures(t, nil)
	analyzer := draftsvc.NewQualityAnalyzer(store)

	report := analyzer.AnalyzeQuality(nil)
	assert.Zero(t, report.OverallScore)
}

func TestQualityAnalyzer_AnalyzeQuality_ScoresAndExplains(t *testing.T) {
	store := loadStoreWithFixtures(t, map[string]any{
		"meta_stats.json": map[string]any{
			"Azir":     map[string]any{"meta_score": 0.9},
			"LeeSin":   map[string]any{"meta_score": 0.8},
			"Renekton": map[string]any{"meta_score": 0.7},
		},
		"synergies.json": map[string]any{
			"synergies": map[string]any{
				"Azir": map[string]any{"best_partners": map[string]any{"LeeSin": "S"}},
			},
		},
		"champion_role_history.json": map[string]any{
			"champions": map[string]any{
				"Azir":     map[string]any{"archetype_scores": map[string]any{"poke": 0.9}},
				"LeeSin":   map[string]any{"archetype_scores": map[string]any{"poke": 0.8}},
				"Renekton": map[string]any{"archetype_scores": map[string]any{"poke": 0.7}},
			},
		},
	})
	analyzer := draftsvc.NewQualityAnalyzer(store)

	report := analyzer.AnalyzeQuality([]string{"Azir", "LeeSin", "Renekton"})
	assert.Greater(t, report.MetaScore, 0.0)
	assert.Greater(t, report.OverallScore, 0.0)
	assert.Contains(t, report.Strengths, "Strong individual pick power")
	assert.Contains(t, report.Strengths, "Clear team identity")
}
