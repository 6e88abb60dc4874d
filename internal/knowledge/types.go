// Package knowledge loads the immutable, process-wide lookup tables the
// recommendation pipeline scores against. Tables are read once at process
// start from a directory of JSON files and never mutated afterward —
// concurrent reads from many sessions need no synchronization.
package knowledge

import "encoding/json"

// Confidence buckets derived from raw sample sizes by thresholds 8/4/1.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
	ConfidenceNoData Confidence = "NO_DATA"
)

// FlexChampionEntry is one champion's role-probability source data, keyed
// by the data file's own role tokens (TOP/JUNGLE/MID/ADC/SUP), as emitted
// by flex_champions.json. The object mixes numeric role-probability fields
// with a boolean is_flex flag, so it unmarshals through a raw map first.
type FlexChampionEntry struct {
	Probabilities map[string]float64
	IsFlex        bool
}

func (e *FlexChampionEntry) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Probabilities = make(map[string]float64)
	for k, v := range raw {
		switch k {
		case "is_flex":
			if b, ok := v.(bool); ok {
				e.IsFlex = b
			}
		default:
			if f, ok := v.(float64); ok {
				e.Probabilities[k] = f
			}
		}
	}
	return nil
}

type FlexChampionsFile struct {
	FlexPicks map[string]FlexChampionEntry `json:"flex_picks"`
}

// RoleHistoryEntry is one champion's fallback and archetype data from
// champion_role_history.json.
type RoleHistoryEntry struct {
	CanonicalRole        string             `json:"canonical_role"`
	ProPlayPrimaryRole   string             `json:"pro_play_primary_role"`
	CurrentViableRoles   []string           `json:"current_viable_roles"`
	CurrentDistribution  map[string]float64 `json:"current_distribution"`
	AllTimeDistribution  map[string]float64 `json:"all_time_distribution"`
	ArchetypeScores      map[string]float64 `json:"archetype_scores"`
}

// LaneMatchupEntry is a single directional lane-matchup data point.
type LaneMatchupEntry struct {
	WinRate float64 `json:"win_rate"`
	Games   int     `json:"games"`
}

// TeamMatchupEntry is a single directional team-wide matchup data point.
type TeamMatchupEntry struct {
	WinRate float64 `json:"win_rate"`
	Games   int     `json:"games"`
}

// MatchupStatsFile is the root shape of matchup_stats.json: per-role lane
// tables keyed champion -> enemy champion, plus one role-agnostic team table.
type MatchupStatsFile struct {
	LaneMatchups map[string]map[string]map[string]LaneMatchupEntry `json:"lane_matchups"`
	TeamMatchups map[string]map[string]TeamMatchupEntry             `json:"team_matchups"`
}

// MetaStatsEntry is one champion's meta_stats.json record.
type MetaStatsEntry struct {
	PickRate             float64 `json:"pick_rate"`
	BanRate              float64 `json:"ban_rate"`
	MetaTier             string  `json:"meta_tier"`
	MetaScore            float64 `json:"meta_score"`
	BlindPickSafety      float64 `json:"blind_pick_safety"`
	CounterPickDependent bool    `json:"counter_pick_dependent"`
}

// TournamentPerformanceEntry is one champion's role-specific performance
// record inside a tournament_meta (or replay_meta/<id>) file.
type TournamentPerformanceEntry struct {
	WinRate float64 `json:"win_rate"`
	Picks   int     `json:"picks"`
}

// TournamentMetaEntry is one champion's tournament_meta.json record.
type TournamentMetaEntry struct {
	Priority    float64                               `json:"priority"`
	Performance map[string]TournamentPerformanceEntry `json:"performance"`
}

// PlayerChampionEntry is one player/champion cell of player_proficiency.json.
type PlayerChampionEntry struct {
	GamesRaw        int     `json:"games_raw"`
	GamesWeighted   float64 `json:"games_weighted"`
	WinRate         float64 `json:"win_rate"`
	WinRateWeighted float64 `json:"win_rate_weighted"`
}

// SkillTransferEntry maps a champion to a similar champion and how often
// players who play one also play the other.
type SkillTransferEntry struct {
	Champion   string  `json:"champion"`
	CoPlayRate float64 `json:"co_play_rate"`
}

// CuratedChampionSynergy is one champion's synergies.json record: curated
// partner ratings (S/A/B/C) keyed by partner champion name.
type CuratedChampionSynergy struct {
	BestPartners       map[string]string `json:"best_partners"`
	PartnerRequirement string            `json:"partner_requirement,omitempty"`
}

// StatisticalSynergyEntry is a statistically observed pairwise win rate
// from champion_synergies.json, used when no curated entry exists.
type StatisticalSynergyEntry struct {
	WinRate float64 `json:"win_rate"`
	Games   int     `json:"games"`
}
