package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// Configurable default penalties applied to champions absent from the
// active tournament meta file.
const (
	defaultMissingPriority    = 0.05
	defaultMissingPerformance = 0.35
)

// TournamentScorer reads contested-pick priority and role-specific
// performance for the active tournament, optionally swapped per-tournament
// for replay mode so historical games see era-appropriate values.
type TournamentScorer struct {
	store        *knowledge.Store
	tournamentID string
}

func NewTournamentScorer(store *knowledge.Store) *TournamentScorer {
	return &TournamentScorer{store: store}
}

// WithTournament returns a scorer reading from replay_meta/<tournamentID>
// instead of the default tournament_meta.json.
func (t *TournamentScorer) WithTournament(tournamentID string) *TournamentScorer {
	return &TournamentScorer{store: t.store, tournamentID: tournamentID}
}

func (t *TournamentScorer) lookup(champion string) (knowledge.TournamentMetaEntry, bool) {
	if t.tournamentID != "" {
		return t.store.ReplayTournamentMeta(t.tournamentID, champion)
	}
	return t.store.TournamentMeta(champion)
}

// GetPriority is role-agnostic contestation priority in [0,1].
func (t *TournamentScorer) GetPriority(champion string) float64 {
	if e, ok := t.lookup(champion); ok {
		return e.Priority
	}
	return defaultMissingPriority
}

// GetPerformance is role-specific adjusted performance: low-sample high
// win rates are blended toward 0.5 so a 2-pick 100% run doesn't read as
// an established power pick.
func (t *TournamentScorer) GetPerformance(champion string, role domain.Role) float64 {
	e, ok := t.lookup(champion)
	if !ok {
		return defaultMissingPerformance
	}
	key := dataKeyMap[role]
	perf, ok := e.Performance[key]
	if !ok {
		return defaultMissingPerformance
	}
	if perf.Picks < 10 && perf.WinRate > 0.5 {
		frac := float64(perf.Picks) / 10
		return frac*perf.WinRate + (1-frac)*0.5
	}
	return perf.WinRate
}

// GetTournamentScores bundles priority and role performance for convenience.
func (t *TournamentScorer) GetTournamentScores(champion string, role domain.Role) (priority, performance float64) {
	return t.GetPriority(champion), t.GetPerformance(champion, role)
}

// GetMetadata returns the raw entry, when one exists, for display/debug.
func (t *TournamentScorer) GetMetadata(champion string) (knowledge.TournamentMetaEntry, bool) {
	return t.lookup(champion)
}

// GetTopPriorityChampions returns the top `limit` champions by priority.
func (t *TournamentScorer) GetTopPriorityChampions(limit int) []string {
	var names []string
	if t.tournamentID == "" {
		names = t.store.AllChampionsWithRoleHistory()
	} else {
		// Replay tournament files are lazily loaded per-champion lookup;
		// fall back to the champions the role-history table knows about
		// and score each through the tournament lookup.
		names = t.store.AllChampionsWithRoleHistory()
	}
	sort.Strings(names)
	type scored struct {
		champion string
		priority float64
	}
	scoredList := make([]scored, 0, len(names))
	for _, n := range names {
		if _, ok := t.lookup(n); ok {
			scoredList = append(scoredList, scored{n, t.GetPriority(n)})
		}
	}
	sort.SliceStable(scoredList, func(i, j int) bool { return scoredList[i].priority > scoredList[j].priority })
	if limit > 0 && len(scoredList) > limit {
		scoredList = scoredList[:limit]
	}
	out := make([]string, len(scoredList))
	for i, s := range scoredList {
		out[i] = s.champion
	}
	return out
}
