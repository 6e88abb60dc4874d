package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/repository"
)

type matchDataStore struct {
	db *gorm.DB
}

func NewMatchDataStore(db *gorm.DB) *matchDataStore {
	return &matchDataStore{db: db}
}

func (r *matchDataStore) ListRecentSeries(ctx context.Context, limit int) ([]repository.RecentSeries, error) {
	var rows []domain.MatchSeries
	err := r.db.WithContext(ctx).
		Preload("TeamA").Preload("TeamB").
		Order("match_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.RecentSeries, 0, len(rows))
	for _, s := range rows {
		entry := repository.RecentSeries{
			ID:        s.ID,
			MatchDate: s.MatchDate,
			Format:    s.Format,
			TeamAID:   s.TeamAID,
			TeamBID:   s.TeamBID,
		}
		if s.TeamA != nil {
			entry.TeamAName = s.TeamA.Name
		}
		if s.TeamB != nil {
			entry.TeamBName = s.TeamB.Name
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *matchDataStore) GamesForSeries(ctx context.Context, seriesID uuid.UUID) ([]repository.SeriesGame, error) {
	var games []domain.MatchGame
	err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("game_number ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.SeriesGame, 0, len(games))
	for _, g := range games {
		out = append(out, repository.SeriesGame{
			GameNumber:      g.GameNumber,
			PatchVersion:    g.PatchVersion,
			WinnerTeamID:    g.WinnerTeamID,
			DurationSeconds: g.DurationSeconds,
		})
	}
	return out, nil
}

func (r *matchDataStore) GameInfo(ctx context.Context, seriesID uuid.UUID, gameNumber int) (*repository.GameInfo, error) {
	var g domain.MatchGame
	err := r.db.WithContext(ctx).
		Where("series_id = ? AND game_number = ?", seriesID, gameNumber).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &repository.GameInfo{
		GameID:       g.ID,
		BlueTeamID:   g.BlueTeamID,
		RedTeamID:    g.RedTeamID,
		MatchDate:    g.MatchDate,
		PatchVersion: g.PatchVersion,
		WinnerTeamID: g.WinnerTeamID,
	}, nil
}

func (r *matchDataStore) TeamForGameSide(ctx context.Context, gameID uuid.UUID, side domain.Side) (*repository.TeamRef, error) {
	var g domain.MatchGame
	if err := r.db.WithContext(ctx).First(&g, "id = ?", gameID).Error; err != nil {
		return nil, err
	}
	teamID := g.BlueTeamID
	if side == domain.SideRed {
		teamID = g.RedTeamID
	}
	var team domain.MatchTeam
	if err := r.db.WithContext(ctx).First(&team, "id = ?", teamID).Error; err != nil {
		return nil, err
	}
	return &repository.TeamRef{ID: team.ID, Name: team.Name}, nil
}

func (r *matchDataStore) PlayersForGameBySide(ctx context.Context, gameID uuid.UUID, side domain.Side) ([]repository.RosterPlayer, error) {
	ref, err := r.TeamForGameSide(ctx, gameID, side)
	if err != nil {
		return nil, err
	}
	var entries []domain.MatchRosterEntry
	err = r.db.WithContext(ctx).
		Where("game_id = ? AND team_id = ?", gameID, ref.ID).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return toRosterPlayers(entries), nil
}

func (r *matchDataStore) DraftActions(ctx context.Context, gameID uuid.UUID) ([]repository.DraftActionRecord, error) {
	var g domain.MatchGame
	if err := r.db.WithContext(ctx).First(&g, "id = ?", gameID).Error; err != nil {
		return nil, err
	}
	var actions []domain.MatchDraftAction
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("sequence ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.DraftActionRecord, 0, len(actions))
	for _, a := range actions {
		side := domain.SideBlue
		if a.TeamID == g.RedTeamID {
			side = domain.SideRed
		}
		out = append(out, repository.DraftActionRecord{
			Sequence:   a.Sequence,
			TeamSide:   side,
			ActionType: a.ActionType,
			Champion:   a.ChampionID,
		})
	}
	return out, nil
}

func (r *matchDataStore) TeamGames(ctx context.Context, teamID uuid.UUID, limit int) ([]repository.TeamGame, error) {
	var games []domain.MatchGame
	err := r.db.WithContext(ctx).
		Where("blue_team_id = ? OR red_team_id = ?", teamID, teamID).
		Order("match_date DESC").
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.TeamGame, 0, len(games))
	for _, g := range games {
		side := domain.SideBlue
		opponent := g.RedTeamID
		if g.RedTeamID == teamID {
			side = domain.SideRed
			opponent = g.BlueTeamID
		}
		out = append(out, repository.TeamGame{
			GameID:     g.ID,
			Side:       side,
			OpponentID: opponent,
			MatchDate:  g.MatchDate,
		})
	}
	return out, nil
}

// TeamRoster returns the roster from the team's single most recent game,
// which is taken as its latest complete lineup.
func (r *matchDataStore) TeamRoster(ctx context.Context, teamID uuid.UUID) ([]repository.RosterPlayer, error) {
	var lastGame domain.MatchGame
	err := r.db.WithContext(ctx).
		Where("blue_team_id = ? OR red_team_id = ?", teamID, teamID).
		Order("match_date DESC").
		First(&lastGame).Error
	if err != nil {
		return nil, err
	}
	var entries []domain.MatchRosterEntry
	err = r.db.WithContext(ctx).
		Where("game_id = ? AND team_id = ?", lastGame.ID, teamID).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return toRosterPlayers(entries), nil
}

func (r *matchDataStore) TournamentIDForGame(ctx context.Context, gameID uuid.UUID) (string, error) {
	var g domain.MatchGame
	if err := r.db.WithContext(ctx).Preload("Series").First(&g, "id = ?", gameID).Error; err != nil {
		return "", err
	}
	if g.Series == nil {
		return "", nil
	}
	return g.Series.TournamentID, nil
}

func toRosterPlayers(entries []domain.MatchRosterEntry) []repository.RosterPlayer {
	seen := make(map[uuid.UUID]bool, len(entries))
	out := make([]repository.RosterPlayer, 0, len(entries))
	for _, e := range entries {
		if seen[e.PlayerID] {
			continue
		}
		seen[e.PlayerID] = true
		out = append(out, repository.RosterPlayer{ID: e.PlayerID, Name: e.PlayerName, Role: e.Role})
	}
	return out
}
