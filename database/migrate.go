package database

import (
	"fmt"

	"appointly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
		&models.Notification{},
		&models.ChatbotLog{},
		&models.Account{},
		&models.Session{},
		&models.VerificationToken{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

var defaultRoles = []models.Role{
	{Name: models.RoleNameAdmin, Description: strPtr("Platform administrator")},
	{Name: models.RoleNameClient, Description: strPtr("Default role for registered users")},
	{Name: models.RoleNameProvider, Description: strPtr("Offers services and availabilities")},
}

// SeedRoles создаёт базовые роли, существующие строки не трогает
func SeedRoles(db *gorm.DB) error {
	for _, role := range defaultRoles {
		r := role
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&r).Error
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
