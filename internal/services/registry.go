package services

import (
	"appointly/internal/auth"
	"appointly/internal/email"
	"appointly/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	CategoryService CategoryService
	ProfileService  ProfileService
	AuthService     AuthService
	EmailProvider   email.Provider
}

// Dependencies - внешние зависимости, которые сервисы не создают сами
type Dependencies struct {
	Tokens      *auth.TokenManager
	Mailer      email.Provider
	Templates   *email.TemplateManager
	FrontendURL string
}

// NewServiceContainer собирает сервисы поверх stateless репозиториев
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()

	return &ServiceContainer{
		CategoryService: NewCategoryService(repositories.NewCategoryRepository()),
		ProfileService:  NewProfileService(userRepo),
		AuthService: NewAuthService(
			userRepo,
			repositories.NewRoleRepository(),
			repositories.NewSessionRepository(),
			repositories.NewVerificationTokenRepository(),
			deps.Tokens,
			deps.Mailer,
			deps.Templates,
			deps.FrontendURL,
		),
		EmailProvider: deps.Mailer,
	}
}
