package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-jwt-secret-long-enough-for-validation"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	assert.Equal(t, "https://openlibrary.org", cfg.OpenLibraryBaseURL)
	assert.Equal(t, "https://gutendex.com", cfg.GutendexBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://lune.example, https://app.lune.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://lune.example", "https://app.lune.example"}, cfg.CORSOrigins)
}

func TestLoadConfig_BadInt(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("CACHE_TTL", "sometimes")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPPort:        8080,
			JWTSecret:       testSecret,
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			LogLevel:        "info",
			LogFormat:       "text",
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.HTTPPort = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.AccessTokenTTL = 0
	assert.Error(t, cfg.Validate())
}
