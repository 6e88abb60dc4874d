// Package draftsvc ties the individual scorers in internal/recommend
// together into a single facade over a draft's current state: phase
// derivation, state reconstruction from an action sequence, and
// recommendation dispatch for whichever team is on the clock.
package draftsvc

import (
	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
	"github.com/wutims/draftengine/internal/metrics"
	"github.com/wutims/draftengine/internal/recommend"
)

// Engine is the single entry point a session manager calls into to get the
// next set of recommendations for a draft in progress.
type Engine struct {
	store      *knowledge.Store
	rosterOf   recommend.RosterLookup
	flex       *recommend.FlexResolver
	pickEngine *recommend.PickRecommendationEngine
	banService *recommend.BanRecommendationService
}

// NewEngine builds an Engine from a loaded knowledge store. rosterOf
// resolves an enemy team id to its roster for ban recommendations; pass
// nil when the caller always supplies enemyPlayers explicitly.
func NewEngine(store *knowledge.Store, rosterOf recommend.RosterLookup) *Engine {
	flex := recommend.NewFlexResolver(store)
	tournament := recommend.NewTournamentScorer(store)
	return &Engine{
		store:      store,
		rosterOf:   rosterOf,
		flex:       flex,
		pickEngine: recommend.NewPickRecommendationEngine(store, flex),
		banService: recommend.NewBanRecommendationService(store, flex, tournament, rosterOf),
	}
}

// WithTournament returns an Engine whose flex resolver and tournament
// scorer rescue missing data from a specific replay tournament's meta
// file instead of the global default.
func (e *Engine) WithTournament(tournamentID string) *Engine {
	flex := e.flex.WithTournament(tournamentID)
	tournament := recommend.NewTournamentScorer(e.store).WithTournament(tournamentID)
	return &Engine{
		store:      e.store,
		rosterOf:   e.rosterOf,
		flex:       flex,
		pickEngine: recommend.NewPickRecommendationEngine(e.store, flex),
		banService: recommend.NewBanRecommendationService(e.store, flex, tournament, e.rosterOf),
	}
}

// AllChampions lists every champion the knowledge store has data for,
// used as a default pick pool where no per-team history is available.
func (e *Engine) AllChampions() []string {
	return e.store.AllChampionsWithRoleHistory()
}

// recommendPhase converts the draft's five-stage phase plus the upcoming
// action type into the ban service's narrower Phase enum.
func recommendPhase(phase domain.DraftPhase) recommend.Phase {
	switch phase {
	case domain.DraftPhaseBan1:
		return recommend.PhaseBan1
	case domain.DraftPhasePick1:
		return recommend.PhasePick1
	case domain.DraftPhaseBan2:
		return recommend.PhaseBan2
	case domain.DraftPhasePick2:
		return recommend.PhasePick2
	default:
		return recommend.PhaseComplete
	}
}

// Recommendations is the dispatch result: exactly one of Picks or Bans is
// populated, depending on the upcoming action type at the state's cursor.
type Recommendations struct {
	Phase domain.DraftPhase
	Picks []recommend.PickRecommendation
	Bans  []recommend.BanRecommendation
}

// GetRecommendations inspects state's next action and dispatches to either
// the pick engine or the ban service for forTeam. team is forTeam's own
// roster (used for proficiency scoring); enemyTeamID/enemyPlayers resolve
// the opposing roster for ban recommendations — enemyPlayers wins when
// non-empty, otherwise the engine's RosterLookup is consulted.
func (e *Engine) GetRecommendations(
	state domain.StateView,
	forTeam domain.Side,
	team []recommend.RosterPlayer,
	enemyTeamID string,
	enemyPlayers []recommend.RosterPlayer,
	limit int,
) Recommendations {
	ourPicks, enemyPicks := sidePicks(state, forTeam)
	banned := append(append([]string{}, state.BlueBans...), state.RedBans...)

	if state.NextAction == nil || *state.NextAction == domain.ActionTypePick {
		metrics.RecommendationRequests.WithLabelValues("pick", string(state.Phase)).Inc()
		picks := e.pickEngine.GetRecommendations(team, ourPicks, enemyPicks, banned, limit)
		return Recommendations{Phase: state.Phase, Picks: picks}
	}

	metrics.RecommendationRequests.WithLabelValues("ban", string(state.Phase)).Inc()
	bans := e.banService.GetBanRecommendations(
		enemyTeamID, ourPicks, enemyPicks, banned,
		recommendPhase(state.Phase), enemyPlayers, limit,
	)
	return Recommendations{Phase: state.Phase, Bans: bans}
}

// sidePicks splits a StateView's picks into (ours, theirs) from forTeam's
// perspective.
func sidePicks(state domain.StateView, forTeam domain.Side) (ours, enemy []string) {
	if forTeam == domain.SideBlue {
		return state.BluePicks, state.RedPicks
	}
	return state.RedPicks, state.BluePicks
}
