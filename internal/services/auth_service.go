package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"appointly/internal/auth"
	"appointly/internal/email"
	"appointly/internal/logger"
	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/services/dto"
	"appointly/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResetTokenTTL - срок жизни ссылки сброса пароля
const ResetTokenTTL = time.Hour

const (
	msgResetLinkConsole = "Reset link generated (check server console)"
	msgResetLinkSent    = "Reset link sent"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, sessionToken string) error
	// Authenticate проверяет access токен и серверную сессию за ним
	Authenticate(db *gorm.DB, accessToken string) (*auth.Principal, error)
	RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) (string, error)
	ResetPassword(db *gorm.DB, req *dto.PasswordResetConfirmRequest) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	roleRepo    repositories.RoleRepository
	sessionRepo repositories.SessionRepository
	tokenRepo   repositories.VerificationTokenRepository
	tokens      *auth.TokenManager
	mailer      email.Provider
	templates   *email.TemplateManager
	frontendURL string
	now         func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	sessionRepo repositories.SessionRepository,
	tokenRepo repositories.VerificationTokenRepository,
	tokens *auth.TokenManager,
	mailer email.Provider,
	templates *email.TemplateManager,
	frontendURL string,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		tokens:      tokens,
		mailer:      mailer,
		templates:   templates,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

// Register - регистрация клиента по email и паролю
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	emailAddr := strings.TrimSpace(req.Email)

	exists, err := s.userRepo.ExistsByEmail(db, emailAddr)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrUserAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	role, err := s.roleRepo.FindByName(db, models.RoleNameClient)
	if err != nil {
		// роли засеваются при старте, без них регистрация невозможна
		return apperrors.InternalError(fmt.Errorf("default role %q: %w", models.RoleNameClient, err))
	}

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	name := models.DisplayName(first, last)

	user := &models.User{
		FirstName: &first,
		LastName:  &last,
		Name:      &name,
		Email:     emailAddr,
		Password:  &hash,
		Phone:     dto.NormalizeText(&req.Phone),
		RoleID:    &role.ID,
	}

	// между проверкой и вставкой email мог занять параллельный запрос
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrUserAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID)
	return nil
}

// Login проверяет пароль, создаёт сессию и выдаёт access токен
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.HasPassword() || !auth.CheckPasswordHash(req.Password, *user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	sessionToken := uuid.NewString()
	accessToken, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.RoleName(), sessionToken)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		SessionToken: sessionToken,
		UserID:       user.ID,
		Expires:      expiresAt,
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User: dto.SessionUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: models.Deref(user.FirstName),
			LastName:  models.Deref(user.LastName),
			Image:     models.Deref(user.Image),
			Role:      user.RoleName(),
		},
	}, nil
}

// Logout удаляет сессию. Повторный logout не ошибка.
func (s *AuthServiceImpl) Logout(db *gorm.DB, sessionToken string) error {
	err := s.sessionRepo.DeleteByToken(db, sessionToken)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		logger.CtxDebug(db.Statement.Context, "logout without active session")
		return nil
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Authenticate(db *gorm.DB, accessToken string) (*auth.Principal, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		return nil, apperrors.ErrSessionInvalid
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrSessionInvalid
	}

	session, err := s.sessionRepo.FindByToken(db, claims.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionInvalid
		}
		return nil, apperrors.InternalError(err)
	}
	if session.UserID != userID || session.IsExpired(s.now()) {
		return nil, apperrors.ErrSessionInvalid
	}

	return &auth.Principal{
		UserID:    userID,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: session.SessionToken,
	}, nil
}

// RequestPasswordReset выпускает новый токен (старые удаляются) и отправляет ссылку.
// Возвращает сообщение для клиента.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) (string, error) {
	emailAddr = strings.TrimSpace(emailAddr)

	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		return "", mapUserError(err)
	}

	token := &models.VerificationToken{
		Identifier: user.Email,
		Token:      uuid.NewString(),
		Expires:    s.now().Add(ResetTokenTTL),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.DeleteByIdentifier(tx, user.Email); err != nil {
			return err
		}
		return s.tokenRepo.Create(tx, token)
	})
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.sendResetLink(ctx, user, token.Token); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "provider", s.mailer.Name())
		return "", apperrors.ErrEmailDelivery.WithError(err)
	}

	if s.mailer.Name() == email.ProviderConsole {
		return msgResetLinkConsole, nil
	}
	return msgResetLinkSent, nil
}

// ResetPassword меняет пароль по токену и гасит все токены этого email
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.PasswordResetConfirmRequest) error {
	if strings.TrimSpace(req.Token) == "" {
		return apperrors.ErrInvalidToken
	}

	token, err := s.tokenRepo.FindByToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if token.IsExpired(s.now()) {
		if err := s.tokenRepo.DeleteByToken(db, token.Token); err != nil {
			logger.Warn("failed to delete expired reset token", "error", err)
		}
		return apperrors.ErrTokenExpired
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		consumed, err := s.tokenRepo.Consume(tx, token.Token)
		if err != nil {
			return err
		}
		if !consumed {
			return repositories.ErrTokenNotFound
		}
		if err := s.userRepo.UpdatePasswordByEmail(tx, token.Identifier, hash); err != nil {
			return err
		}
		return s.tokenRepo.DeleteByIdentifier(tx, token.Identifier)
	})
	if errors.Is(err, repositories.ErrTokenNotFound) {
		return apperrors.ErrInvalidToken
	}
	if err != nil {
		return mapUserError(err)
	}
	return nil
}

func (s *AuthServiceImpl) resetURL(token string) string {
	return s.frontendURL + "/reset-password?token=" + token
}

func (s *AuthServiceImpl) sendResetLink(ctx context.Context, user *models.User, token string) error {
	link := s.resetURL(token)

	name := models.Deref(user.FirstName)
	if name == "" {
		name = user.Email
	}

	html, err := s.templates.Render(email.TemplatePasswordReset, email.TemplateData{
		"Name":      name,
		"ResetURL":  link,
		"ExpiresIn": "1 hour",
	})
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, &email.Email{
		To:       []string{user.Email},
		Subject:  "Reset your Appointly password",
		Body:     "Open this link to choose a new password: " + link,
		HTMLBody: html,
	})
}
