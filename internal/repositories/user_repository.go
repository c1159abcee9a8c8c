package repositories

import (
	"errors"

	"appointly/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) (*models.User, error)
	UpdatePassword(db *gorm.DB, id uint, passwordHash string) error
	UpdatePasswordByEmail(db *gorm.DB, email, passwordHash string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateFields обновляет указанные колонки и перечитывает пользователя
func (r *userRepository) UpdateFields(db *gorm.DB, id uint, updates map[string]interface{}) (*models.User, error) {
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(db, id)
}

func (r *userRepository) UpdatePassword(db *gorm.DB, id uint, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePasswordByEmail(db *gorm.DB, email, passwordHash string) error {
	result := db.Model(&models.User{}).Where("email = ?", email).Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
