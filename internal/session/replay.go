// Package session manages the two kinds of scoped, per-run draft state the
// engine serves over time: replays of recorded games and live simulator
// drafts against an AI opponent. Both follow the same locking and TTL
// pattern the live website's pause manager uses — a mutex per session,
// a last-access timestamp, and an opportunistic, lock-respecting sweep.
package session

import (
	"sync"
	"time"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/draftsvc"
	"github.com/wutims/draftengine/internal/metrics"
	"github.com/wutims/draftengine/internal/recerr"
	"github.com/wutims/draftengine/internal/recommend"
)

const (
	sweepInterval = 60 * time.Second

	defaultRecommendationLimit = 10
)

// sessionIdleTTL is how long a session may sit untouched before the
// reaper considers it abandoned. Overridable at startup via
// SetIdleTTL so it can be driven by configuration.
var sessionIdleTTL = 3600 * time.Second

// SetIdleTTL overrides sessionIdleTTL for both replay and simulator
// managers. Call once at startup before any manager is created.
func SetIdleTTL(d time.Duration) {
	if d > 0 {
		sessionIdleTTL = d
	}
}

// ReplayStatus is the replay session's play/pause/complete state.
type ReplayStatus string

const (
	ReplayPlaying  ReplayStatus = "PLAYING"
	ReplayPaused   ReplayStatus = "PAUSED"
	ReplayComplete ReplayStatus = "COMPLETE"
)

// ReplayStep is one streamed update: the action that just occurred, the
// state through that action, the recommendations that had been computed
// for it *before* it happened, and recommendations pre-generated for
// whatever comes next so the stream always ships one step ahead.
type ReplayStep struct {
	Action    domain.ActionRecord
	State     domain.StateView
	PriorRecs draftsvc.Recommendations
	NextRecs  draftsvc.Recommendations
}

// ReplaySession replays a recorded game's action list action by action,
// pacing delivery by delay/speed.
type ReplaySession struct {
	ID       string
	actions  []domain.ActionRecord
	blueTeam []recommend.RosterPlayer
	redTeam  []recommend.RosterPlayer
	engine   *draftsvc.Engine

	priorGameWinners []domain.Side

	mu           sync.Mutex
	index        int
	status       ReplayStatus
	delaySeconds float64
	speed        float64
	lastAccess   time.Time
	pending      draftsvc.Recommendations
	havePending  bool
}

// NewReplaySession builds a paused replay session positioned before its
// first action. priorGameWinners is every earlier game's winner in this
// series, for the before/after series score.
func NewReplaySession(id string, actions []domain.ActionRecord, blueTeam, redTeam []recommend.RosterPlayer, engine *draftsvc.Engine, priorGameWinners []domain.Side) *ReplaySession {
	return &ReplaySession{
		ID:               id,
		actions:          actions,
		blueTeam:         blueTeam,
		redTeam:          redTeam,
		engine:           engine,
		priorGameWinners: priorGameWinners,
		status:           ReplayPaused,
		delaySeconds:     2.0,
		speed:            1.0,
		lastAccess:       time.Now(),
	}
}

// SetPacing adjusts the per-step delay and playback speed; either may be
// left at zero to keep its current value.
func (r *ReplaySession) SetPacing(delaySeconds, speed float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if delaySeconds > 0 {
		r.delaySeconds = delaySeconds
	}
	if speed > 0 {
		r.speed = speed
	}
}

// Delay is the interval a caller should sleep between successive Next()
// calls while playing.
func (r *ReplaySession) Delay() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.delaySeconds / r.speed * float64(time.Second))
}

func (r *ReplaySession) Play() { r.setStatus(ReplayPlaying) }

func (r *ReplaySession) Pause() { r.setStatus(ReplayPaused) }

func (r *ReplaySession) setStatus(s ReplayStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == ReplayComplete {
		return
	}
	r.status = s
	r.lastAccess = time.Now()
}

func (r *ReplaySession) Status() ReplayStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *ReplaySession) LastAccess() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastAccess
}

// SeriesScoreBefore is the series score from every game played before this
// one.
func (r *ReplaySession) SeriesScoreBefore() [2]int {
	return seriesScore(r.priorGameWinners)
}

// Complete records this game's winner and returns the series score after
// it, once the replay has reached the end of its action list.
func (r *ReplaySession) Complete(winner domain.Side) [2]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = ReplayComplete
	return seriesScore(append(append([]domain.Side{}, r.priorGameWinners...), winner))
}

func seriesScore(winners []domain.Side) [2]int {
	var blue, red int
	for _, w := range winners {
		if w == domain.SideBlue {
			blue++
		} else {
			red++
		}
	}
	return [2]int{blue, red}
}

// Next advances the replay by exactly one action. Pacing (the sleep
// between calls) is the caller's responsibility — this keeps the status
// machine poll-driven rather than internally ticking, matching how the
// simulator side is driven by explicit calls too.
func (r *ReplaySession) Next() (ReplayStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status == ReplayComplete {
		return ReplayStep{}, recerr.InvalidTurn("replay session %s is already complete", r.ID)
	}
	if r.index >= len(r.actions) {
		r.status = ReplayComplete
		return ReplayStep{}, recerr.InvalidTurn("replay session %s has no further actions", r.ID)
	}

	action := r.actions[r.index]
	priorRecs := r.pending
	if !r.havePending {
		priorRecs = r.recommendationsForLocked(r.index)
	}

	r.index++
	state := domain.BuildStateView(r.actions, r.index)
	r.lastAccess = time.Now()

	var nextRecs draftsvc.Recommendations
	if r.index < len(r.actions) {
		nextRecs = r.recommendationsForLocked(r.index)
		r.pending = nextRecs
		r.havePending = true
	} else {
		r.status = ReplayComplete
		r.havePending = false
	}

	return ReplayStep{Action: action, State: state, PriorRecs: priorRecs, NextRecs: nextRecs}, nil
}

// recommendationsForLocked computes recommendations for whoever acts at
// actions[index], from the state built through index. Must be called with
// r.mu held.
func (r *ReplaySession) recommendationsForLocked(index int) draftsvc.Recommendations {
	state := domain.BuildStateView(r.actions, index)
	if state.NextTeam == nil {
		return draftsvc.Recommendations{Phase: state.Phase}
	}
	team, enemy := r.blueTeam, r.redTeam
	if *state.NextTeam == domain.SideRed {
		team, enemy = r.redTeam, r.blueTeam
	}
	return r.engine.GetRecommendations(state, *state.NextTeam, team, "", enemy, defaultRecommendationLimit)
}

// ReplayManager owns every live replay session and sweeps idle ones.
type ReplayManager struct {
	mu        sync.Mutex
	sessions  map[string]*ReplaySession
	lastSweep time.Time
}

func NewReplayManager() *ReplayManager {
	return &ReplayManager{sessions: map[string]*ReplaySession{}}
}

func (m *ReplayManager) Create(s *ReplaySession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	metrics.ActiveSessions.WithLabelValues("replay").Set(float64(len(m.sessions)))
	m.sweepLocked()
}

func (m *ReplayManager) Get(id string) (*ReplaySession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *ReplayManager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	metrics.ActiveSessions.WithLabelValues("replay").Set(float64(len(m.sessions)))
}

// Sweep is the entry point the cron-driven reaper calls on a fixed
// schedule; sweepLocked still self-rate-limits so a manual call never
// sweeps more often than sweepInterval.
func (m *ReplayManager) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
}

// sweepLocked removes sessions idle for sessionIdleTTL whose lock is not
// currently held, at most once per sweepInterval. Must be called with
// m.mu held.
func (m *ReplayManager) sweepLocked() {
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
	metrics.SessionReaperSweeps.WithLabelValues("replay").Inc()
	if evicted > 0 {
		metrics.SessionsEvicted.WithLabelValues("replay").Add(float64(evicted))
		metrics.ActiveSessions.WithLabelValues("replay").Set(float64(len(m.sessions)))
	}
}
