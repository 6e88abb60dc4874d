package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/session"
)

func twoActionGame() []domain.ActionRecord {
	return []domain.ActionRecord{
		{Sequence: 0, TeamSide: domain.SideBlue, ActionType: domain.ActionTypeBan, Champion: "Renekton"},
		{Sequence: 1, TeamSide: domain.SideRed, ActionType: domain.ActionTypeBan, Champion: "LeeSin"},
	}
}

func newTestReplay(t *testing.T, priorWinners []domain.Side) *session.ReplaySession {
	t.Helper()
	engine := fiveRoleEngine(t)
	return session.NewReplaySession("replay-1", twoActionGame(), nil, nil, engine, priorWinners)
}

func TestReplaySession_SeriesScoreBefore(t *testing.T) {
	r := newTestReplay(t, []domain.Side{domain.SideBlue, domain.SideRed, domain.SideBlue})
	assert.Equal(t, [2]int{2, 1}, r.SeriesScoreBefore())
}

func TestReplaySession_Next_StepsThroughActionsAndCompletes(t *testing.T) {
	r := newTestReplay(t, nil)
	assert.Equal(t, session.ReplayPaused, r.Status())

	step1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Renekton", step1.Action.Champion)
	assert.Equal(t, []string{"Renekton"}, step1.State.BlueBans)
	assert.NotEqual(t, session.ReplayComplete, r.Status())

	step2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "LeeSin", step2.Action.Champion)
	assert.Equal(t, session.ReplayComplete, r.Status())

	_, err = r.Next()
	assert.Error(t, err, "a completed replay has no further actions")
}

func TestReplaySession_Complete_AppendsWinnerToSeriesScore(t *testing.T) {
	r := newTestReplay(t, []domain.Side{domain.SideBlue})
	score := r.Complete(domain.SideRed)
	assert.Equal(t, [2]int{1, 1}, score)
	assert.Equal(t, session.ReplayComplete, r.Status())
}

func TestReplaySession_PlayPause_NoopOnceComplete(t *testing.T) {
	r := newTestReplay(t, nil)
	r.Complete(domain.SideBlue)

	r.Play()
	assert.Equal(t, session.ReplayComplete, r.Status(), "play/pause are no-ops once a replay has completed")
}

func TestReplaySession_Delay_ScalesWithSpeed(t *testing.T) {
	r := newTestReplay(t, nil)
	r.SetPacing(4, 2)
	assert.Equal(t, int64(2), r.Delay().Milliseconds()/1000, "4 second delay at 2x speed is 2 seconds")
}

func TestReplayManager_CreateGetEnd(t *testing.T) {
	mgr := session.NewReplayManager()
	r := newTestReplay(t, nil)

	mgr.Create(r)
	got, ok := mgr.Get("replay-1")
	require.True(t, ok)
	assert.Equal(t, r, got)

	mgr.End("replay-1")
	_, ok = mgr.Get("replay-1")
	assert.False(t, ok)
}
