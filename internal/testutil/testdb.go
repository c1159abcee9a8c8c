package testutil

import (
	"fmt"
	"testing"

	"appointly/database"
	"appointly/internal/auth"
	"appointly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB поднимает отдельную in-memory SQLite базу на тест,
// мигрирует все модели и засевает роли.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(database.Options{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err, "не удалось открыть тестовую БД")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedRoles(db))
	return db
}

// UserFixture - параметры тестового пользователя
type UserFixture struct {
	Email     string
	Password  string // пусто - пользователь без пароля (OAuth)
	FirstName string
	LastName  string
	Role      string
}

// CreateUser сохраняет пользователя с bcrypt-хешем пароля
func CreateUser(t *testing.T, db *gorm.DB, f UserFixture) *models.User {
	t.Helper()

	if f.Email == "" {
		f.Email = uuid.NewString() + "@example.com"
	}
	if f.Role == "" {
		f.Role = models.RoleNameClient
	}

	var role models.Role
	require.NoError(t, db.Where("name = ?", f.Role).First(&role).Error)

	user := &models.User{
		Email:  f.Email,
		RoleID: &role.ID,
	}
	if f.FirstName != "" {
		user.FirstName = &f.FirstName
	}
	if f.LastName != "" {
		user.LastName = &f.LastName
	}
	if f.Password != "" {
		hash, err := auth.HashPassword(f.Password)
		require.NoError(t, err)
		user.Password = &hash
	}

	require.NoError(t, db.Create(user).Error)
	user.Role = &role
	return user
}
