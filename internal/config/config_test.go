package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "ESTATE_CRM_ADDR", "DATABASE_URL", "LOG_LEVEL", "NOTIFICATION_INTERVAL", "REDIS_ADDR", "REDIS_ADD", "UPLOAD_DIR"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.NotificationInterval)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.True(t, cfg.PortalSimulatedLatency)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.ErrorIs(t, cfg.RequireDatabase(), ErrMissingDatabaseURL)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://crm@localhost/crm")
	t.Setenv("REDIS_ADD", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("NOTIFICATION_INTERVAL", "15m")
	t.Setenv("PORTAL_SIMULATED_LATENCY", "false")
	t.Setenv("UPLOAD_DIR", "/var/lib/crm/uploads")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 15*time.Minute, cfg.NotificationInterval)
	assert.False(t, cfg.PortalSimulatedLatency)
	assert.Equal(t, "/var/lib/crm/uploads", cfg.UploadDir)
	assert.NoError(t, cfg.RequireDatabase())
}
