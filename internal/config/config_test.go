package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("PASSWORD_RESET_TOKEN_SECRET", "reset-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTokenExpiresIn)
	assert.Equal(t, 168*time.Hour, cfg.Token.RefreshTokenExpiresIn)
	assert.Equal(t, "bookmark-keeper-api", cfg.Token.Issuer)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE", "memory")
	t.Setenv("ACCESS_TOKEN_EXPIRES_IN", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 5*time.Minute, cfg.Token.AccessTokenExpiresIn)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	t.Setenv("PASSWORD_RESET_TOKEN_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_IdenticalSecretsRejected(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "same-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "same-secret")
	t.Setenv("PASSWORD_RESET_TOKEN_SECRET", "reset-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidStorage(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
