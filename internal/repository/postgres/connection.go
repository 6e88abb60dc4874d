package postgres

import (
	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.MatchTeam{},
		&domain.MatchSeries{},
		&domain.MatchGame{},
		&domain.MatchRosterEntry{},
		&domain.MatchDraftAction{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Session:   NewSessionRepository(db),
		MatchData: NewMatchDataStore(db),
	}
}
