package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "0 0 0 * * *", cfg.App.PurgeSchedule)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("AUTH_RATE_LIMIT", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port, "invalid integers fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2, cfg.Server.AuthRateLimit)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "8000", AuthRateLimit: 1, AuthRateBurst: 1},
		Database: DatabaseConfig{Host: "localhost"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
	}
	require.NoError(t, cfg.Validate())

	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg.Redis.Addr = "localhost:6379"
	cfg.Server.AuthRateBurst = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadClient(t *testing.T) {
	t.Setenv("SHIFT_API_BASE_URL", "https://api.example")
	t.Setenv("SHIFT_API_TIMEOUT", "3s")
	t.Setenv("SHIFT_API_LONG_TIMEOUT", "garbage")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 150*time.Second, cfg.LongTimeout)
	assert.NotEmpty(t, cfg.CredentialsFile)
}
