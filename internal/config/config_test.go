package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("SESSION_NAMESPACE", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "sqpv_user", cfg.Session.Namespace)
	assert.Equal(t, time.Duration(0), cfg.Session.TTL())
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "MEMORY")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
	t.Setenv("APP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:9000", cfg.App.Addr())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "cookie")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.Error(t, err)
}

func TestSessionSlotTTLIsBoundedByToken(t *testing.T) {
	cfg := Config{Auth: AuthConfig{AccessTokenTTLMinutes: 480}}
	assert.Equal(t, 8*time.Hour, cfg.SessionSlotTTL())

	cfg.Session.TTLMinutes = 30
	assert.Equal(t, 30*time.Minute, cfg.SessionSlotTTL())

	cfg.Session.TTLMinutes = 600
	assert.Equal(t, 8*time.Hour, cfg.SessionSlotTTL())

	cfg.Auth.AccessTokenTTLMinutes = 0
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval())
}
