package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/config"
)

func setRequiredAuthEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("AUTH_JWT_ISSUER", "env-issuer")
}

func TestLoad_MissingAuthSettingsIsFatal(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_ISSUER", "")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingAuthSettings)

	t.Run("secret alone is not enough", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "only-secret")

		_, err := config.Load()
		assert.ErrorIs(t, err, config.ErrMissingAuthSettings)
	})
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredAuthEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-issuer", cfg.Auth.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, 30*time.Minute, cfg.Auth.PasswordResetTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Minute, cfg.Cache.PostListTTL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredAuthEnv(t)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_HOURS", "24")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_MalformedIntsFallBack(t *testing.T) {
	setRequiredAuthEnv(t)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
}
