package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  env: production
database:
  driver: postgres
  url: postgres://file/db
jwt:
  secret: from-file
  ttl: 2h
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "4000")
	t.Setenv("FRONT_END_URL", "https://app.example.com, https://admin.example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "postgres://file/db", cfg.Database.DSN)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}

func TestLoad_WithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "console", cfg.Email.Provider)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL())
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestValidate(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		cfg := Default()
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("secret required in production", func(t *testing.T) {
		cfg := Default()
		cfg.Database.DSN = "postgres://x"
		cfg.Server.Env = "production"
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

		cfg.JWT.Secret = "s3cret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := Default()
		cfg.Database.DSN = "x"
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})
}
