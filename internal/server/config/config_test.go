package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Address)
	assert.Equal(t, "auth.db", cfg.DatabasePath)
	assert.Equal(t, "test-secret", cfg.SecretKey)
	assert.Equal(t, 720*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, PasswordSchemePlain, cfg.PasswordScheme)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ADDRESS", ":9000")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, PasswordSchemeBcrypt, cfg.PasswordScheme)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestNew_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := New()
	assert.Error(t, err)
}

func TestNew_BadPasswordScheme(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("PASSWORD_SCHEME", "md5")

	_, err := New()
	assert.Error(t, err)
}

func TestNew_NegativeTTL(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "-1s")

	_, err := New()
	assert.Error(t, err)
}
