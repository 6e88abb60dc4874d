package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/repository"
	"github.com/wutims/draftengine/internal/session"
)

// fakeMatchDataStore implements repository.MatchDataStore with only
// TeamGames and DraftActions wired; every other method is unused by
// NewMatchHistoryStrategy and panics if ever called.
type fakeMatchDataStore struct {
	games      []repository.TeamGame
	actionsFor map[uuid.UUID][]repository.DraftActionRecord
}

func (f *fakeMatchDataStore) ListRecentSeries(ctx context.Context, limit int) ([]repository.RecentSeries, error) {
	panic("unused")
}
func (f *fakeMatchDataStore) GamesForSeries(ctx context.Context, seriesID uuid.UUID) ([]repository.SeriesGame, error) {
	panic("unused")
}
func (f *fakeMatchDataStore) GameInfo(ctx context.Context, seriesID uuid.UUID, gameNumber int) (*repository.GameInfo, error) {
	panic("unused")
}
func (f *fakeMatchDataStore) TeamForGameSide(ctx context.Context, gameID uuid.UUID, side domain.Side) (*repository.TeamRef, error) {
	panic("unused")
}
func (f *fakeMatchDataStore) PlayersForGameBySide(ctx context.Context, gameID uuid.UUID, side domain.Side) ([]repository.RosterPlayer, error) {
	panic("unused")
}
func (f *fakeMatchDataStore) DraftActions(ctx context.Context, gameID uuid.UUID) ([]repository.DraftActionRecord, error) {
	return f.actionsFor[gameID], nil
}
func (f *fakeMatchDataStore) TeamGames(ctx context.Context, teamID uuid.UUID, limit int) ([]repository.TeamGame, error) {
	return f.games, nil
}
func (f *fakeMatchDataStore) TeamRoster(ctx context.Context, teamID uuid.UUID) ([]repository.RosterPlayer, error) {
	panic("unused")
}
func (f *fakeMatchDataStore) TournamentIDForGame(ctx context.Context, gameID uuid.UUID) (string, error) {
	panic("unused")
}

func TestNewMatchHistoryStrategy_NoGamesFallsBack(t *testing.T) {
	store := &fakeMatchDataStore{}
	_, ok := session.NewMatchHistoryStrategy(context.Background(), store, uuid.New())
	assert.False(t, ok, "a team with no recorded games should let the caller fall back to a uniform strategy")
}

func TestNewMatchHistoryStrategy_DerivesPoolScriptAndWeights(t *testing.T) {
	gameA, gameB := uuid.New(), uuid.New()
	teamID := uuid.New()
	store := &fakeMatchDataStore{
		games: []repository.TeamGame{
			{GameID: gameA, Side: domain.SideBlue, MatchDate: time.Now()},
			{GameID: gameB, Side: domain.SideRed, MatchDate: time.Now().Add(-time.Hour)},
		},
		actionsFor: map[uuid.UUID][]repository.DraftActionRecord{
			gameA: {
				{Sequence: 0, TeamSide: domain.SideBlue, ActionType: domain.ActionTypeBan, Champion: "Orianna"},
				{Sequence: 6, TeamSide: domain.SideBlue, ActionType: domain.ActionTypePick, Champion: "Azir"},
			},
			gameB: {
				{Sequence: 1, TeamSide: domain.SideRed, ActionType: domain.ActionTypeBan, Champion: "Viego"},
				{Sequence: 7, TeamSide: domain.SideRed, ActionType: domain.ActionTypePick, Champion: "Azir"},
			},
		},
	}

	strategy, ok := session.NewMatchHistoryStrategy(context.Background(), store, teamID)
	require.True(t, ok)

	assert.Contains(t, strategy.ChampionPool(teamID.String()), "Azir", "pick-frequency pool should include every champion picked on-side across recorded games")

	champ, found := strategy.WeightedRandom(teamID.String(), []string{"Azir"})
	require.True(t, found)
	assert.Equal(t, "Azir", champ, "Azir is the only weighted candidate so it must win regardless of the random draw")

	_, noFallback := strategy.FallbackScript(999)
	assert.False(t, noFallback, "no recorded action exists at sequence 999")
}
