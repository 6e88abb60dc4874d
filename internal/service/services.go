package service

import (
	"github.com/wutims/draftengine/internal/config"
	"github.com/wutims/draftengine/internal/repository"
)

type Services struct {
	Auth *AuthService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Session, cfg),
	}
}
