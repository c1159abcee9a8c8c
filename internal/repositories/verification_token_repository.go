package repositories

import (
	"errors"
	"time"

	"appointly/internal/models"

	"gorm.io/gorm"
)

// VerificationTokenRepository - токены сброса пароля (identifier = email)
type VerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.VerificationToken) error
	FindByToken(db *gorm.DB, token string) (*models.VerificationToken, error)
	Consume(db *gorm.DB, token string) (bool, error)
	DeleteByIdentifier(db *gorm.DB, identifier string) error
	DeleteByToken(db *gorm.DB, token string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type verificationTokenRepository struct{}

func NewVerificationTokenRepository() VerificationTokenRepository {
	return &verificationTokenRepository{}
}

func (r *verificationTokenRepository) Create(db *gorm.DB, token *models.VerificationToken) error {
	return db.Create(token).Error
}

func (r *verificationTokenRepository) FindByToken(db *gorm.DB, token string) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	if err := db.Where("token = ?", token).First(&vt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &vt, nil
}

// Consume удаляет токен и сообщает, удалил ли его именно этот вызов.
// Из двух конкурентных транзакций строку получит только одна.
func (r *verificationTokenRepository) Consume(db *gorm.DB, token string) (bool, error) {
	result := db.Where("token = ?", token).Delete(&models.VerificationToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *verificationTokenRepository) DeleteByIdentifier(db *gorm.DB, identifier string) error {
	return db.Where("identifier = ?", identifier).Delete(&models.VerificationToken{}).Error
}

func (r *verificationTokenRepository) DeleteByToken(db *gorm.DB, token string) error {
	if token == "" {
		return ErrTokenNotFound
	}
	return db.Where("token = ?", token).Delete(&models.VerificationToken{}).Error
}

func (r *verificationTokenRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires < ?", now).Delete(&models.VerificationToken{})
	return result.RowsAffected, result.Error
}
