// Package recommend is the recommendation pipeline: role-probability
// resolution, the five scorers, archetype and synergy services, the pick
// and ban engines, and the series context builder (spec components 2-8,13).
package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// MinRolePropability is the noise threshold below which a role is dropped
// from a flex distribution. Kept as the literal 5.1% to exclude the exact
// 5% boundary case.
const MinRoleProbability = 0.051

// PoolEntry is a player's per-champion proficiency record, confidence-bucketed.
type PoolEntry struct {
	Champion        string
	GamesRaw        int
	GamesWeighted   float64
	WinRate         float64
	WinRateWeighted float64
	Confidence      knowledge.Confidence
}

// RosterPlayer is one of a team's five players for recommendation purposes.
type RosterPlayer struct {
	Name string
	Role domain.Role
}

// ConfidenceFromGames buckets a raw game count using thresholds 8/4/1.
func ConfidenceFromGames(games int) knowledge.Confidence {
	switch {
	case games >= 8:
		return knowledge.ConfidenceHigh
	case games >= 4:
		return knowledge.ConfidenceMedium
	case games >= 1:
		return knowledge.ConfidenceLow
	default:
		return knowledge.ConfidenceNoData
	}
}

// confidenceValue maps a confidence bucket to the pick engine's weighting
// scalar: HIGH:1.0, MEDIUM:0.8, LOW:0.5, NO_DATA:0.3.
func confidenceValue(c knowledge.Confidence) float64 {
	switch c {
	case knowledge.ConfidenceHigh:
		return 1.0
	case knowledge.ConfidenceMedium:
		return 0.8
	case knowledge.ConfidenceLow:
		return 0.5
	default:
		return 0.3
	}
}

// PriorityToTier maps a role-agnostic tournament priority score to a
// S/A/B/C/D letter tier, matching the five-tier meta_tier vocabulary used
// throughout the knowledge files.
func PriorityToTier(priority float64) string {
	switch {
	case priority >= 0.7:
		return "S"
	case priority >= 0.5:
		return "A"
	case priority >= 0.3:
		return "B"
	case priority >= 0.15:
		return "C"
	default:
		return "D"
	}
}

// sortedKeys returns map keys in a deterministic order, for callers that
// need to break score ties the same way every run (replay idempotence).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
