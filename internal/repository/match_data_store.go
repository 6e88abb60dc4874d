package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wutims/draftengine/internal/domain"
)

// RecentSeries is one row of list_recent_series: enough to let a driver
// surface offer a series picker without a second round trip per row.
type RecentSeries struct {
	ID        uuid.UUID
	MatchDate time.Time
	Format    domain.SeriesFormat
	TeamAID   uuid.UUID
	TeamAName string
	TeamBID   uuid.UUID
	TeamBName string
}

// SeriesGame is one row of games_for_series.
type SeriesGame struct {
	GameNumber      int
	PatchVersion    string
	WinnerTeamID    *uuid.UUID
	DurationSeconds int
}

// GameInfo is the response shape of game_info.
type GameInfo struct {
	GameID       uuid.UUID
	BlueTeamID   uuid.UUID
	RedTeamID    uuid.UUID
	MatchDate    time.Time
	PatchVersion string
	WinnerTeamID *uuid.UUID
}

// TeamRef names a team without pulling its whole roster history.
type TeamRef struct {
	ID   uuid.UUID
	Name string
}

// RosterPlayer is one seat of a five-player roster, role already resolved
// through the authoritative player-role override.
type RosterPlayer struct {
	ID   uuid.UUID
	Name string
	Role domain.Role
}

// DraftActionRecord is one entry of draft_actions, with team_side already
// derived from the action's team id against the series' own side
// assignment for that game.
type DraftActionRecord struct {
	Sequence   int
	TeamSide   domain.Side
	ActionType domain.ActionType
	Champion   string
}

// TeamGame is one row of team_games: a team's recent game, the side it
// played, and who it played against.
type TeamGame struct {
	GameID     uuid.UUID
	Side       domain.Side
	OpponentID uuid.UUID
	MatchDate  time.Time
}

// MatchDataStore is the read-only query surface the recommendation core
// consumes for historical match data. It never writes: ingestion of new
// series/games/rosters/draft actions is out of scope for the engine
// itself.
type MatchDataStore interface {
	ListRecentSeries(ctx context.Context, limit int) ([]RecentSeries, error)
	GamesForSeries(ctx context.Context, seriesID uuid.UUID) ([]SeriesGame, error)
	GameInfo(ctx context.Context, seriesID uuid.UUID, gameNumber int) (*GameInfo, error)
	TeamForGameSide(ctx context.Context, gameID uuid.UUID, side domain.Side) (*TeamRef, error)
	PlayersForGameBySide(ctx context.Context, gameID uuid.UUID, side domain.Side) ([]RosterPlayer, error)
	DraftActions(ctx context.Context, gameID uuid.UUID) ([]DraftActionRecord, error)
	TeamGames(ctx context.Context, teamID uuid.UUID, limit int) ([]TeamGame, error)
	TeamRoster(ctx context.Context, teamID uuid.UUID) ([]RosterPlayer, error)
	TournamentIDForGame(ctx context.Context, gameID uuid.UUID) (string, error)
}
