package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/draftsvc"
	"github.com/wutims/draftengine/internal/metrics"
	"github.com/wutims/draftengine/internal/recerr"
	"github.com/wutims/draftengine/internal/recommend"
)

// DraftMode selects whether champions used earlier in a series are
// blocked from being picked again.
type DraftMode string

const (
	DraftModeNormal   DraftMode = "normal"
	DraftModeFearless DraftMode = "fearless"
)

// SeriesLength is the match format; it determines the win ceiling.
type SeriesLength int

const (
	SeriesBo1 SeriesLength = 1
	SeriesBo3 SeriesLength = 3
	SeriesBo5 SeriesLength = 5
)

// Ceiling is the number of game wins that ends the series.
func (s SeriesLength) Ceiling() int {
	switch s {
	case SeriesBo3:
		return 2
	case SeriesBo5:
		return 3
	default:
		return 1
	}
}

// FearlessEntry records one champion blocked for the rest of a fearless
// series, with which game and team used it.
type FearlessEntry struct {
	Champion string
	Game     int
	Team     domain.Side
}

// EnemyStrategy supplies the AI opponent's champion pool and scripted or
// weighted fallbacks when the recommendation-driven pick has no candidate
// left in that pool.
type EnemyStrategy interface {
	// ChampionPool returns every champion teamID has played across up to
	// its 20 most recent games.
	ChampionPool(teamID string) []string
	// ReferenceScript returns the champion a stored reference draft took
	// at this action index, if one exists.
	ReferenceScript(actionIndex int) (string, bool)
	// FallbackScript is consulted when no reference script covers this
	// index.
	FallbackScript(actionIndex int) (string, bool)
	// WeightedRandom samples from available, weighted by teamID's
	// historical pick frequency.
	WeightedRandom(teamID string, available []string) (string, bool)
}

// SimulatorSession drives a live draft against an AI-controlled enemy
// side.
type SimulatorSession struct {
	ID           string
	BlueTeamID   string
	RedTeamID    string
	CoachingSide domain.Side
	SeriesLength SeriesLength
	DraftMode    DraftMode

	bluePlayers []recommend.RosterPlayer
	redPlayers  []recommend.RosterPlayer
	engine      *draftsvc.Engine
	strategy    EnemyStrategy

	mu              sync.Mutex
	actions         []domain.ActionRecord
	fearlessBlocked map[string]FearlessEntry
	gameNumber      int
	blueWins        int
	redWins         int
	lastAccess      time.Time
}

func NewSimulatorSession(
	id, blueTeamID, redTeamID string,
	coachingSide domain.Side,
	seriesLength SeriesLength,
	draftMode DraftMode,
	bluePlayers, redPlayers []recommend.RosterPlayer,
	engine *draftsvc.Engine,
	strategy EnemyStrategy,
) *SimulatorSession {
	return &SimulatorSession{
		ID:              id,
		BlueTeamID:      blueTeamID,
		RedTeamID:       redTeamID,
		CoachingSide:    coachingSide,
		SeriesLength:    seriesLength,
		DraftMode:       draftMode,
		bluePlayers:     bluePlayers,
		redPlayers:      redPlayers,
		engine:          engine,
		strategy:        strategy,
		fearlessBlocked: map[string]FearlessEntry{},
		gameNumber:      1,
		lastAccess:      time.Now(),
	}
}

func (s *SimulatorSession) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *SimulatorSession) State() domain.StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.BuildSimulatorStateView(s.actions)
}

func (s *SimulatorSession) SeriesScore() (blue, red int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blueWins, s.redWins
}

func (s *SimulatorSession) IsSeriesComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ceiling := s.SeriesLength.Ceiling()
	return s.blueWins >= ceiling || s.redWins >= ceiling
}

// unavailableLocked is banned ∪ picks ∪ fearless_blocked. Must be called
// with s.mu held.
func (s *SimulatorSession) unavailableLocked() map[string]bool {
	set := map[string]bool{}
	for _, a := range s.actions {
		set[a.Champion] = true
	}
	for champ := range s.fearlessBlocked {
		set[champ] = true
	}
	return set
}

// SubmitAction applies a human action for the coaching side. It fails if
// it is not the coaching side's turn or the champion is unavailable.
func (s *SimulatorSession) SubmitAction(champion string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.BuildSimulatorStateView(s.actions)
	if state.NextTeam == nil || state.NextAction == nil {
		return recerr.InvalidTurn("draft for session %s is already complete", s.ID)
	}
	if *state.NextTeam != s.CoachingSide {
		return recerr.InvalidTurn("it is not the coaching side's turn in session %s", s.ID)
	}
	if s.unavailableLocked()[champion] {
		return recerr.Unavailable("%s is banned, picked, or fearless-blocked", champion)
	}

	s.appendLocked(*state.NextTeam, *state.NextAction, champion)
	return nil
}

func (s *SimulatorSession) appendLocked(team domain.Side, actionType domain.ActionType, champion string) {
	s.actions = append(s.actions, domain.ActionRecord{
		Sequence:   len(s.actions),
		ActionType: actionType,
		TeamSide:   team,
		Champion:   champion,
	})
	s.lastAccess = time.Now()
}

// TriggerEnemyAction drives the non-coaching side's next action through
// the AI strategy. It is a no-op error if it is the coaching side's turn.
func (s *SimulatorSession) TriggerEnemyAction() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.BuildSimulatorStateView(s.actions)
	if state.NextTeam == nil || state.NextAction == nil {
		return "", recerr.InvalidTurn("draft for session %s is already complete", s.ID)
	}
	if *state.NextTeam == s.CoachingSide {
		return "", recerr.InvalidTurn("it is the coaching side's turn in session %s", s.ID)
	}

	champion, err := s.generateSmartActionLocked(state, *state.NextTeam, *state.NextAction)
	if err != nil {
		return "", err
	}
	s.appendLocked(*state.NextTeam, *state.NextAction, champion)
	return champion, nil
}

// generateSmartActionLocked implements EnemyStrategy.generate_smart_action:
// pool the enemy's played champions, ask the recommendation pipeline from
// the enemy's own perspective, filter to the pool, sample from the top
// three for believability, and fall back through scripts and weighted
// randomness if nothing survives the filter. Must be called with s.mu
// held.
func (s *SimulatorSession) generateSmartActionLocked(state domain.StateView, enemySide domain.Side, actionType domain.ActionType) (string, error) {
	enemyTeamID, ourTeamID := s.BlueTeamID, s.RedTeamID
	enemyRoster, ourRoster := s.bluePlayers, s.redPlayers
	if enemySide == domain.SideRed {
		enemyTeamID, ourTeamID = s.RedTeamID, s.BlueTeamID
		enemyRoster, ourRoster = s.redPlayers, s.bluePlayers
	}

	unavailable := s.unavailableLocked()
	pool := excluding(s.strategy.ChampionPool(enemyTeamID), unavailable)

	recs := s.engine.GetRecommendations(state, enemySide, enemyRoster, ourTeamID, ourRoster, defaultRecommendationLimit)
	var candidates []string
	if actionType == domain.ActionTypePick {
		for _, r := range recs.Picks {
			candidates = append(candidates, r.Champion)
		}
	} else {
		for _, r := range recs.Bans {
			candidates = append(candidates, r.Champion)
		}
	}

	filtered := intersect(candidates, pool)
	if len(filtered) > 0 {
		top := filtered
		if len(top) > 3 {
			top = top[:3]
		}
		return top[rand.Intn(len(top))], nil
	}

	if champ, ok := s.strategy.ReferenceScript(len(s.actions)); ok && !unavailable[champ] {
		return champ, nil
	}
	if champ, ok := s.strategy.FallbackScript(len(s.actions)); ok && !unavailable[champ] {
		return champ, nil
	}
	remainingPool := excluding(pool, unavailable)
	if champ, ok := s.strategy.WeightedRandom(enemyTeamID, remainingPool); ok {
		return champ, nil
	}
	return "", recerr.MissingData("enemy strategy produced no candidate for team %s", enemyTeamID)
}

// uniformStrategy is an EnemyStrategy with no scripted reference games
// and no historical pick-frequency weighting: it offers its whole pool
// unconditionally and falls back to a plain uniform draw. It exists so
// a simulator session can run before any match-history-derived
// strategy is wired in.
type uniformStrategy struct {
	pools map[string][]string
}

// NewUniformStrategy builds an EnemyStrategy whose champion pool per
// team is exactly the champions supplied, with no script and uniform
// random fallback.
func NewUniformStrategy(pools map[string][]string) EnemyStrategy {
	return &uniformStrategy{pools: pools}
}

func (u *uniformStrategy) ChampionPool(teamID string) []string { return u.pools[teamID] }

func (u *uniformStrategy) ReferenceScript(actionIndex int) (string, bool) { return "", false }

func (u *uniformStrategy) FallbackScript(actionIndex int) (string, bool) { return "", false }

func (u *uniformStrategy) WeightedRandom(teamID string, available []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	return available[rand.Intn(len(available))], true
}

func excluding(items []string, exclude map[string]bool) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		if !exclude[v] {
			out = append(out, v)
		}
	}
	return out
}

func intersect(a []string, bSet []string) []string {
	set := map[string]bool{}
	for _, v := range bSet {
		set[v] = true
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

// CompleteGame records the winner of the current game, blocks both teams'
// picks from later games when in fearless mode, and advances the series
// score.
func (s *SimulatorSession) CompleteGame(winner domain.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if winner == domain.SideBlue {
		s.blueWins++
	} else {
		s.redWins++
	}

	if s.DraftMode == DraftModeFearless {
		for _, a := range s.actions {
			if a.ActionType != domain.ActionTypePick {
				continue
			}
			if _, already := s.fearlessBlocked[a.Champion]; already {
				continue
			}
			s.fearlessBlocked[a.Champion] = FearlessEntry{
				Champion: a.Champion,
				Game:     s.gameNumber,
				Team:     a.TeamSide,
			}
		}
	}
}

// AdvanceToNextGame resets the action list for a new game in the series.
// It fails if the series has already reached its win ceiling.
func (s *SimulatorSession) AdvanceToNextGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ceiling := s.SeriesLength.Ceiling()
	if s.blueWins >= ceiling || s.redWins >= ceiling {
		return recerr.InvalidTurn("series for session %s is already complete", s.ID)
	}
	s.gameNumber++
	s.actions = nil
	s.lastAccess = time.Now()
	return nil
}

// SimulatorManager owns every live simulator session and sweeps idle ones.
type SimulatorManager struct {
	mu        sync.Mutex
	sessions  map[string]*SimulatorSession
	lastSweep time.Time
}

func NewSimulatorManager() *SimulatorManager {
	return &SimulatorManager{sessions: map[string]*SimulatorSession{}}
}

func (m *SimulatorManager) Create(s *SimulatorSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	metrics.ActiveSessions.WithLabelValues("simulator").Set(float64(len(m.sessions)))
	m.sweepLocked()
}

func (m *SimulatorManager) Get(id string) (*SimulatorSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *SimulatorManager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	metrics.ActiveSessions.WithLabelValues("simulator").Set(float64(len(m.sessions)))
}

// Sweep is the entry point the cron-driven reaper calls on a fixed
// schedule; sweepLocked still self-rate-limits so a manual call never
// sweeps more often than sweepInterval.
func (m *SimulatorManager) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
}

func (m *SimulatorManager) sweepLocked() {
	now := time.Now()
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	evicted := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastAccess()) < sessionIdleTTL {
			continue
		}
		if !s.mu.TryLock() {
			continue
		}
		s.mu.Unlock()
		delete(m.sessions, id)
		evicted++
	}
	metrics.SessionReaperSweeps.WithLabelValues("simulator").Inc()
	if evicted > 0 {
		metrics.SessionsEvicted.WithLabelValues("simulator").Add(float64(evicted))
		metrics.ActiveSessions.WithLabelValues("simulator").Set(float64(len(m.sessions)))
	}
}
