package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, "PKR", cfg.DisplayCurrency)
	assert.True(t, cfg.SeedDefaultChart)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")
	t.Setenv("DISPLAY_CURRENCY", "usd")
	t.Setenv("SEED_DEFAULT_CHART", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "USD", cfg.DisplayCurrency)
	assert.False(t, cfg.SeedDefaultChart)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadConfig_BadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "forever")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}
