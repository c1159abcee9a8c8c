package database

import (
	"fmt"
	"testing"

	"appointly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestAutoMigrateAndSeedRoles(t *testing.T) {
	db, err := Open(Options{
		Driver:   "sqlite",
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrate(db))
	for _, table := range []string{"roles", "users", "categories", "services", "availabilities",
		"appointments", "notifications", "chatbot_logs", "account", "session", "verificationToken"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, SeedRoles(db))
	require.NoError(t, SeedRoles(db), "seeding twice must be a no-op")

	var roles []models.Role
	require.NoError(t, db.Order("name").Find(&roles).Error)
	require.Len(t, roles, 3)
	assert.Equal(t, models.RoleNameAdmin, roles[0].Name)
	assert.Equal(t, models.RoleNameClient, roles[1].Name)
	assert.Equal(t, models.RoleTierUser, roles[1].Tier())
	assert.Equal(t, models.RoleNameProvider, roles[2].Name)
}
