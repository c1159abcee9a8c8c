package repositories

import (
	"errors"
	"time"

	"appointly/internal/models"

	"gorm.io/gorm"
)

// SessionRepository - серверные сессии, на которые ссылается jti в JWT.
// Условия по struct игнорируют нулевые значения, поэтому пустые ключи отсекаются заранее.
type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	FindByToken(db *gorm.DB, token string) (*models.Session, error)
	DeleteByToken(db *gorm.DB, token string) error
	DeleteByUserID(db *gorm.DB, userID uint) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByToken(db *gorm.DB, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	var session models.Session
	if err := db.Where(&models.Session{SessionToken: token}).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(db *gorm.DB, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}
	result := db.Where(&models.Session{SessionToken: token}).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteByUserID(db *gorm.DB, userID uint) error {
	if userID == 0 {
		return nil
	}
	return db.Where(&models.Session{UserID: userID}).Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires < ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
