package services

import (
	"errors"

	"appointly/internal/auth"
	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/services/dto"
	"appointly/internal/validator"
	"appointly/pkg/apperrors"

	"gorm.io/gorm"
)

// ProfileService - профиль текущего пользователя и смена пароля
type ProfileService interface {
	GetProfile(db *gorm.DB, userID uint) (*dto.ProfileEnvelope, error)
	UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileEnvelope, error)
	ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error
}

type profileService struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(db *gorm.DB, userID uint) (*dto.ProfileEnvelope, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return buildProfile(user), nil
}

func (s *profileService) UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileEnvelope, error) {
	updates := make(map[string]interface{})

	if req.FirstName.Set {
		first := req.FirstName.Trimmed()
		if first == "" {
			return nil, apperrors.ErrFirstNameRequired
		}
		updates["firstname"] = first
	}
	if req.LastName.Set {
		last := req.LastName.Trimmed()
		if last == "" {
			return nil, apperrors.ErrLastNameRequired
		}
		updates["lastname"] = last
	}
	if req.Phone.Set {
		phone := req.Phone.Normalized()
		if phone != nil && !validator.ValidPhone(*phone) {
			return nil, apperrors.ErrInvalidPhone
		}
		updates["phone"] = phone
	}
	if req.Image.Set {
		updates["image"] = req.Image.Normalized()
	}

	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.UpdateFields(db, userID, updates)
	if err != nil {
		return nil, mapUserError(err)
	}
	return buildProfile(user), nil
}

func (s *profileService) ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.ErrPasswordsRequired
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return mapUserError(err)
	}
	// social-only аккаунт: пароля нет, менять нечего
	if !user.HasPassword() {
		return apperrors.ErrPasswordNotSet
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, *user.Password) {
		return apperrors.ErrCurrentPasswordIncorrect
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return mapUserError(err)
	}
	return nil
}

func buildProfile(user *models.User) *dto.ProfileEnvelope {
	return &dto.ProfileEnvelope{
		User: dto.ProfileResponse{
			ID:        user.ID,
			FirstName: models.Deref(user.FirstName),
			LastName:  models.Deref(user.LastName),
			Email:     user.Email,
			Phone:     models.Deref(user.Phone),
			Image:     models.Deref(user.Image),
		},
	}
}

func mapUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}
