package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.RoutesAPITimeout)
	assert.Equal(t, 3600, cfg.RouteCacheTTLSeconds)
	assert.Equal(t, time.Hour, cfg.RouteCacheTTL())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ROUTE_CACHE_TTL_SECONDS", "120")
	t.Setenv("ROUTES_API_TIMEOUT", "5s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 120, cfg.RouteCacheTTLSeconds)
	assert.Equal(t, 5*time.Second, cfg.RoutesAPITimeout)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_URL=postgres://from-file\nJWT_SECRET=file-secret\nGOOGLE_MAPS_API_KEY=maps-key\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres://from-file", cfg.DatabaseURL)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, "maps-key", cfg.GoogleMapsAPIKey)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
