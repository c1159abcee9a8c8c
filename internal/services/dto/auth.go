package dto

import "time"

// RegisterRequest - POST /api/register
type RegisterRequest struct {
	FirstName string `json:"firstname" validate:"required,notblank,max=255" example:"Ann"`
	LastName  string `json:"lastname" validate:"required,notblank,max=255" example:"Lee"`
	Email     string `json:"email" validate:"required,email,max=255" example:"ann@example.com"`
	Phone     string `json:"phone" validate:"omitempty,phone" example:"+7 700 123 4567"`
	Password  string `json:"password" validate:"required,min=8" example:"super_password123"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser - пользователь, как его видит клиент после входа
type SessionUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	Role      string `json:"role"`
}

type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        SessionUser `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest проверяется в сервисе: пустой токен даёт
// "Invalid or expired token", а не ошибку валидации
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
