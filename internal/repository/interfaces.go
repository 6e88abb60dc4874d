package repository

import (
	"context"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type Repositories struct {
	User      UserRepository
	Session   SessionRepository
	MatchData MatchDataStore
}
