package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the immutable, process-wide lookup table set. Load once at
// startup; every accessor is safe for concurrent use by many sessions
// since nothing here is ever mutated after Load returns.
type Store struct {
	dir string

	flexChampions    map[string]FlexChampionEntry
	roleHistory      map[string]RoleHistoryEntry
	matchups         MatchupStatsFile
	metaStats        map[string]MetaStatsEntry
	tournamentMeta   map[string]TournamentMetaEntry
	playerProficiency map[string]map[string]PlayerChampionEntry
	playerRoles      map[string]string
	curatedSynergy   map[string]CuratedChampionSynergy
	statSynergy      map[string]map[string]StatisticalSynergyEntry
	archetypeCounters map[string]map[string]float64
	skillTransfer    map[string][]SkillTransferEntry

	replayMeta   map[string]map[string]TournamentMetaEntry
	replayMetaMu sync.Mutex
}

// Load reads every known knowledge file from dir. Missing optional files
// degrade the relevant scorer to its defaults rather than failing startup —
// only a malformed (present but unparseable) file is an error.
func Load(dir string) (*Store, error) {
	s := &Store{
		dir:              dir,
		flexChampions:    map[string]FlexChampionEntry{},
		roleHistory:      map[string]RoleHistoryEntry{},
		metaStats:        map[string]MetaStatsEntry{},
		tournamentMeta:   map[string]TournamentMetaEntry{},
		playerProficiency: map[string]map[string]PlayerChampionEntry{},
		playerRoles:      map[string]string{},
		curatedSynergy:   map[string]CuratedChampionSynergy{},
		statSynergy:      map[string]map[string]StatisticalSynergyEntry{},
		archetypeCounters: map[string]map[string]float64{},
		skillTransfer:    map[string][]SkillTransferEntry{},
		replayMeta:       map[string]map[string]TournamentMetaEntry{},
	}

	var flexFile FlexChampionsFile
	if err := loadOptional(dir, "flex_champions.json", &flexFile); err != nil {
		return nil, err
	}
	s.flexChampions = flexFile.FlexPicks
	if s.flexChampions == nil {
		s.flexChampions = map[string]FlexChampionEntry{}
	}

	var roleHistoryFile struct {
		Champions map[string]RoleHistoryEntry `json:"champions"`
	}
	if err := loadOptional(dir, "champion_role_history.json", &roleHistoryFile); err != nil {
		return nil, err
	}
	if roleHistoryFile.Champions != nil {
		s.roleHistory = roleHistoryFile.Champions
	}

	if err := loadOptional(dir, "matchup_stats.json", &s.matchups); err != nil {
		return nil, err
	}

	if err := loadOptional(dir, "meta_stats.json", &s.metaStats); err != nil {
		return nil, err
	}

	if err := loadOptional(dir, "tournament_meta.json", &s.tournamentMeta); err != nil {
		return nil, err
	}

	if err := loadOptional(dir, "player_proficiency.json", &s.playerProficiency); err != nil {
		return nil, err
	}

	if err := loadOptional(dir, "player_roles.json", &s.playerRoles); err != nil {
		return nil, err
	}

	var synergiesFile struct {
		Synergies map[string]CuratedChampionSynergy `json:"synergies"`
	}
	if err := loadOptional(dir, "synergies.json", &synergiesFile); err != nil {
		return nil, err
	}
	if synergiesFile.Synergies != nil {
		s.curatedSynergy = synergiesFile.Synergies
	}

	if err := loadOptional(dir, "champion_synergies.json", &s.statSynergy); err != nil {
		return nil, err
	}

	var archetypeCountersFile struct {
		Counters map[string]map[string]float64 `json:"counters"`
	}
	if err := loadOptional(dir, "archetype_counters.json", &archetypeCountersFile); err != nil {
		return nil, err
	}
	if archetypeCountersFile.Counters != nil {
		s.archetypeCounters = archetypeCountersFile.Counters
	}

	if err := loadOptional(dir, "skill_transfer.json", &s.skillTransfer); err != nil {
		return nil, err
	}

	return s, nil
}

func loadOptional(dir, name string, v any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// FlexChampion returns a champion's flex_champions.json record, if any.
func (s *Store) FlexChampion(champion string) (FlexChampionEntry, bool) {
	e, ok := s.flexChampions[champion]
	return e, ok
}

// RoleHistory returns a champion's champion_role_history.json record.
func (s *Store) RoleHistory(champion string) (RoleHistoryEntry, bool) {
	e, ok := s.roleHistory[champion]
	return e, ok
}

// AllChampionsWithRoleHistory returns every champion name with a role
// history record, used by meta-tier top-N scans.
func (s *Store) AllChampionsWithRoleHistory() []string {
	names := make([]string, 0, len(s.roleHistory))
	for name := range s.roleHistory {
		names = append(names, name)
	}
	return names
}

// LaneMatchup returns the direct lookup our->enemy for a role, if present.
func (s *Store) LaneMatchup(role, our, enemy string) (LaneMatchupEntry, bool) {
	byRole, ok := s.matchups.LaneMatchups[role]
	if !ok {
		return LaneMatchupEntry{}, false
	}
	ours, ok := byRole[our]
	if !ok {
		return LaneMatchupEntry{}, false
	}
	e, ok := ours[enemy]
	return e, ok
}

// TeamMatchup returns the direct lookup our->enemy team-wide, if present.
func (s *Store) TeamMatchup(our, enemy string) (TeamMatchupEntry, bool) {
	ours, ok := s.matchups.TeamMatchups[our]
	if !ok {
		return TeamMatchupEntry{}, false
	}
	e, ok := ours[enemy]
	return e, ok
}

// MetaStats returns a champion's meta_stats.json record.
func (s *Store) MetaStats(champion string) (MetaStatsEntry, bool) {
	e, ok := s.metaStats[champion]
	return e, ok
}

// TournamentMeta returns a champion's default tournament_meta.json record.
func (s *Store) TournamentMeta(champion string) (TournamentMetaEntry, bool) {
	e, ok := s.tournamentMeta[champion]
	return e, ok
}

// ReplayTournamentMeta returns a champion's record from the per-tournament
// replay_meta/<tournamentID>.json file, lazily loaded and cached for the
// life of the process (the original keeps one of these per active replay,
// since a long replay re-reads it on every action).
func (s *Store) ReplayTournamentMeta(tournamentID, champion string) (TournamentMetaEntry, bool) {
	s.replayMetaMu.Lock()
	table, ok := s.replayMeta[tournamentID]
	if !ok {
		table = map[string]TournamentMetaEntry{}
		path := filepath.Join(s.dir, "replay_meta", tournamentID+".json")
		if data, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(data, &table)
		}
		s.replayMeta[tournamentID] = table
	}
	s.replayMetaMu.Unlock()
	e, ok := table[champion]
	return e, ok
}

// PlayerChampion returns one (player, champion) cell of the proficiency table.
func (s *Store) PlayerChampion(player, champion string) (PlayerChampionEntry, bool) {
	pool, ok := s.playerProficiency[player]
	if !ok {
		return PlayerChampionEntry{}, false
	}
	e, ok := pool[champion]
	return e, ok
}

// PlayerPool returns every champion entry recorded for a player.
func (s *Store) PlayerPool(player string) map[string]PlayerChampionEntry {
	return s.playerProficiency[player]
}

// AuthoritativeRole returns the player_roles.json override for a player.
func (s *Store) AuthoritativeRole(player string) (string, bool) {
	r, ok := s.playerRoles[player]
	return r, ok
}

// CuratedSynergy returns champion c's curated synergy record.
func (s *Store) CuratedSynergy(champion string) (CuratedChampionSynergy, bool) {
	e, ok := s.curatedSynergy[champion]
	return e, ok
}

// StatisticalSynergy returns the statistical fallback synergy between a and b.
func (s *Store) StatisticalSynergy(a, b string) (StatisticalSynergyEntry, bool) {
	if partners, ok := s.statSynergy[a]; ok {
		if e, ok := partners[b]; ok {
			return e, true
		}
	}
	if partners, ok := s.statSynergy[b]; ok {
		if e, ok := partners[a]; ok {
			return e, true
		}
	}
	return StatisticalSynergyEntry{}, false
}

// ArchetypeEffectiveness returns the rock-paper-scissors effectiveness of
// archetype `ours` against `theirs`, defaulting to 1.0 when absent.
func (s *Store) ArchetypeEffectiveness(ours, theirs string) float64 {
	if m, ok := s.archetypeCounters[ours]; ok {
		if v, ok := m[theirs]; ok {
			return v
		}
	}
	return 1.0
}

// SkillTransferSources returns the ranked list of similar champions a
// player's direct proficiency can be partly transferred from.
func (s *Store) SkillTransferSources(champion string) []SkillTransferEntry {
	return s.skillTransfer[champion]
}
