package recommend

import (
	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// MatchupResult is the common shape returned for a lane or team matchup
// lookup. Team-wide results leave Confidence at its zero value since the
// original carries no confidence field for team data.
type MatchupResult struct {
	Score      float64
	Confidence float64
	Games      int
	DataSource string // "direct" | "reverse_lookup" | "none"
}

// MatchupCalculator looks up 1v1 and team-wide historical win rates.
type MatchupCalculator struct {
	store *knowledge.Store
}

func NewMatchupCalculator(store *knowledge.Store) *MatchupCalculator {
	return &MatchupCalculator{store: store}
}

// GetLaneMatchup returns our's score against enemy in role. Lookup order:
// direct our->enemy; reverse enemy->our inverted (1-wr); else neutral 0.5.
func (m *MatchupCalculator) GetLaneMatchup(our, enemy string, role domain.Role) MatchupResult {
	roleKey := dataKeyMap[role]
	if e, ok := m.store.LaneMatchup(roleKey, our, enemy); ok {
		return MatchupResult{Score: e.WinRate, Confidence: confidenceFromSample(e.Games), Games: e.Games, DataSource: "direct"}
	}
	if e, ok := m.store.LaneMatchup(roleKey, enemy, our); ok {
		return MatchupResult{Score: 1 - e.WinRate, Confidence: confidenceFromSample(e.Games), Games: e.Games, DataSource: "reverse_lookup"}
	}
	return MatchupResult{Score: 0.5, Confidence: 0, Games: 0, DataSource: "none"}
}

// GetTeamMatchup is the role-agnostic equivalent, with no confidence field.
func (m *MatchupCalculator) GetTeamMatchup(our, enemy string) MatchupResult {
	if e, ok := m.store.TeamMatchup(our, enemy); ok {
		return MatchupResult{Score: e.WinRate, Games: e.Games, DataSource: "direct"}
	}
	if e, ok := m.store.TeamMatchup(enemy, our); ok {
		return MatchupResult{Score: 1 - e.WinRate, Games: e.Games, DataSource: "reverse_lookup"}
	}
	return MatchupResult{Score: 0.5, Games: 0, DataSource: "none"}
}

// confidenceFromSample maps a raw game count to a [0,1] confidence scalar
// for display purposes, using the same 8/4/1 thresholds as proficiency.
func confidenceFromSample(games int) float64 {
	return confidenceValue(ConfidenceFromGames(games))
}
