package handlers

import (
	"appointly/internal/services"
	"appointly/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	CategoryHandler *CategoryHandler
	ProfileHandler  *ProfileHandler
	AuthHandler     *AuthHandler
	HealthHandler   *HealthHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		CategoryHandler: NewCategoryHandler(base, svc.CategoryService),
		ProfileHandler:  NewProfileHandler(base, svc.ProfileService),
		AuthHandler:     NewAuthHandler(base, svc.AuthService),
		HealthHandler:   NewHealthHandler(base),
	}
}
