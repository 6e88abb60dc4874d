package knowledge_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/knowledge"
)

func writeJSONFixture(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestLoad_EmptyDirDegradesGracefully(t *testing.T) {
	store, err := knowledge.Load(t.TempDir())
	require.NoError(t, err)

	_, ok := store.FlexChampion("Azir")
	assert.False(t, ok)
	_, ok = store.MetaStats("Azir")
	assert.False(t, ok)
	assert.Equal(t, 1.0, store.ArchetypeEffectiveness("poke", "dive"), "missing archetype table defaults to neutral effectiveness")
	assert.Empty(t, store.AllChampionsWithRoleHistory())
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta_stats.json"), []byte("{not valid json"), 0o644))

	_, err := knowledge.Load(dir)
	assert.Error(t, err)
}

func TestLoad_FlexChampionEntrySeparatesProbabilitiesFromFlag(t *testing.T) {
	dir := t.TempDir()
	writeJSONFixture(t, dir, "flex_champions.json", map[string]any{
		"flex_picks": map[string]any{
			"Gragas": map[string]any{
				"TOP":     0.3,
				"JUNGLE":  0.4,
				"is_flex": true,
			},
		},
	})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	entry, ok := store.FlexChampion("Gragas")
	require.True(t, ok)
	assert.True(t, entry.IsFlex)
	assert.Equal(t, 0.3, entry.Probabilities["TOP"])
	assert.Equal(t, 0.4, entry.Probabilities["JUNGLE"])
	assert.NotContains(t, entry.Probabilities, "is_flex")
}

func TestLoad_RoleHistoryAndAllChampions(t *testing.T) {
	dir := t.TempDir()
	writeJSONFixture(t, dir, "champion_role_history.json", map[string]any{
		"champions": map[string]any{
			"Azir": map[string]any{
				"canonical_role":       "mid",
				"pro_play_primary_role": "mid",
				"current_viable_roles": []string{"mid"},
			},
		},
	})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	entry, ok := store.RoleHistory("Azir")
	require.True(t, ok)
	assert.Equal(t, "mid", entry.CanonicalRole)
	assert.Equal(t, []string{"Azir"}, store.AllChampionsWithRoleHistory())
}

func TestLoad_MatchupLookups(t *testing.T) {
	dir := t.TempDir()
	writeJSONFixture(t, dir, "matchup_stats.json", map[string]any{
		"lane_matchups": map[string]any{
			"mid": map[string]any{
				"Azir": map[string]any{
					"Yone": map[string]any{"win_rate": 0.55, "games": 40},
				},
			},
		},
		"team_matchups": map[string]any{
			"blueArchetype": map[string]any{
				"redArchetype": map[string]any{"win_rate": 0.5, "games": 10},
			},
		},
	})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	lane, ok := store.LaneMatchup("mid", "Azir", "Yone")
	require.True(t, ok)
	assert.Equal(t, 0.55, lane.WinRate)

	_, ok = store.LaneMatchup("mid", "Azir", "Zed")
	assert.False(t, ok)

	team, ok := store.TeamMatchup("blueArchetype", "redArchetype")
	require.True(t, ok)
	assert.Equal(t, 10, team.Games)
}

func TestLoad_StatisticalSynergyIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	writeJSONFixture(t, dir, "champion_synergies.json", map[string]any{
		"Leona": map[string]any{
			"Kaisa": map[string]any{"win_rate": 0.58, "games": 120},
		},
	})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	fwd, ok := store.StatisticalSynergy("Leona", "Kaisa")
	require.True(t, ok)
	rev, ok := store.StatisticalSynergy("Kaisa", "Leona")
	require.True(t, ok)
	assert.Equal(t, fwd.WinRate, rev.WinRate)
}

func TestLoad_PlayerProficiencyAndAuthoritativeRole(t *testing.T) {
	dir := t.TempDir()
	writeJSONFixture(t, dir, "player_proficiency.json", map[string]any{
		"Faker": map[string]any{
			"Azir": map[string]any{"games_raw": 50, "games_weighted": 40.0, "win_rate": 0.6, "win_rate_weighted": 0.58},
		},
	})
	writeJSONFixture(t, dir, "player_roles.json", map[string]any{"Faker": "mid"})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	entry, ok := store.PlayerChampion("Faker", "Azir")
	require.True(t, ok)
	assert.Equal(t, 50, entry.GamesRaw)
	assert.Len(t, store.PlayerPool("Faker"), 1)

	role, ok := store.AuthoritativeRole("Faker")
	require.True(t, ok)
	assert.Equal(t, "mid", role)
}

func TestLoad_SkillTransferSources(t *testing.T) {
	dir := t.TempDir()
	writeJSONFixture(t, dir, "skill_transfer.json", map[string]any{
		"Azir": []map[string]any{
			{"champion": "Orianna", "co_play_rate": 0.3},
		},
	})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	sources := store.SkillTransferSources("Azir")
	require.Len(t, sources, 1)
	assert.Equal(t, "Orianna", sources[0].Champion)
}

func TestReplayTournamentMeta_MissingFileReturnsNotFound(t *testing.T) {
	store, err := knowledge.Load(t.TempDir())
	require.NoError(t, err)

	_, ok := store.ReplayTournamentMeta("LCK2024", "Azir")
	assert.False(t, ok)
}

func TestReplayTournamentMeta_ReadsPerTournamentFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "replay_meta"), 0o755))
	writeJSONFixture(t, filepath.Join(dir, "replay_meta"), "LCK2024.json", map[string]any{
		"Azir": map[string]any{"priority": 0.7},
	})
	store, err := knowledge.Load(dir)
	require.NoError(t, err)

	entry, ok := store.ReplayTournamentMeta("LCK2024", "Azir")
	require.True(t, ok)
	assert.Equal(t, 0.7, entry.Priority)

	_, ok = store.ReplayTournamentMeta("LCK2024", "Zed")
	assert.False(t, ok)
}
