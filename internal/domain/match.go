package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeriesFormat is the best-of length of a recorded match series.
type SeriesFormat string

const (
	SeriesFormatBo1 SeriesFormat = "bo1"
	SeriesFormatBo3 SeriesFormat = "bo3"
	SeriesFormatBo5 SeriesFormat = "bo5"
)

// MatchTeam is a competing organization, independent of any one game's
// blue/red assignment.
type MatchTeam struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string    `json:"name" gorm:"not null;uniqueIndex"`
}

// MatchSeries is a recorded best-of between two teams.
type MatchSeries struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MatchDate    time.Time    `json:"matchDate" gorm:"not null;index"`
	Format       SeriesFormat `json:"format" gorm:"not null"`
	TeamAID      uuid.UUID    `json:"teamAId" gorm:"type:uuid;not null;index"`
	TeamBID      uuid.UUID    `json:"teamBId" gorm:"type:uuid;not null;index"`
	TournamentID string       `json:"tournamentId" gorm:"index"`

	TeamA *MatchTeam `json:"teamA,omitempty" gorm:"foreignKey:TeamAID"`
	TeamB *MatchTeam `json:"teamB,omitempty" gorm:"foreignKey:TeamBID"`
}

// MatchGame is one game within a series, recorded with the side each team
// played and the eventual winner.
type MatchGame struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SeriesID        uuid.UUID  `json:"seriesId" gorm:"type:uuid;not null;index"`
	GameNumber      int        `json:"gameNumber" gorm:"not null"`
	PatchVersion    string     `json:"patchVersion"`
	MatchDate       time.Time  `json:"matchDate" gorm:"not null"`
	BlueTeamID      uuid.UUID  `json:"blueTeamId" gorm:"type:uuid;not null"`
	RedTeamID       uuid.UUID  `json:"redTeamId" gorm:"type:uuid;not null"`
	WinnerTeamID    *uuid.UUID `json:"winnerTeamId" gorm:"type:uuid"`
	DurationSeconds int        `json:"durationSeconds"`

	Series *MatchSeries `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
}

// MatchRosterEntry is one player's seat in one game, after the authoritative
// player-role override has already been applied.
type MatchRosterEntry struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID     uuid.UUID `json:"gameId" gorm:"type:uuid;not null;index"`
	TeamID     uuid.UUID `json:"teamId" gorm:"type:uuid;not null;index"`
	PlayerID   uuid.UUID `json:"playerId" gorm:"type:uuid;not null;index"`
	PlayerName string    `json:"playerName" gorm:"not null"`
	Role       Role      `json:"role" gorm:"not null"`
	ChampionID string    `json:"championId" gorm:"not null"`
}

// MatchDraftAction is one pick or ban within a recorded game, in the order
// it actually happened.
type MatchDraftAction struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID     uuid.UUID  `json:"gameId" gorm:"type:uuid;not null;index"`
	Sequence   int        `json:"sequence" gorm:"not null"`
	TeamID     uuid.UUID  `json:"teamId" gorm:"type:uuid;not null"`
	ActionType ActionType `json:"actionType" gorm:"not null"`
	ChampionID string     `json:"championId" gorm:"not null"`
}
