package repositories

import (
	"errors"

	"appointly/internal/models"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(db *gorm.DB, name string) (*models.Role, error)
}

type roleRepository struct{}

func NewRoleRepository() RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByName(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}
