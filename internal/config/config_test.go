package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingPath(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "data/crm.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout())
	assert.Equal(t, defaultFlushSchedule, cfg.FlushSchedule)
	assert.True(t, cfg.Seed)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
addr: ":9090"
log_level: debug
seed: false
flush_schedule: "0 * * * *"
storage:
  driver: redis
  redis_addr: "cache:6379"
  redis_db: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CRM_REDIS_ADDR", "override:6380")
	t.Setenv("CRM_STORAGE_TIMEOUT_SECONDS", "9")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Seed)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "override:6380", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
	assert.Equal(t, 9*time.Second, cfg.Storage.Timeout())
}

func TestLoadUsesConfigEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o600))
	t.Setenv("CRM_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("CRM_STORAGE_DRIVER", "mongo")
		_, err := Load(missingPath(t))
		assert.ErrorContains(t, err, "unknown storage driver")
	})
	t.Run("schedule", func(t *testing.T) {
		t.Setenv("CRM_FLUSH_SCHEDULE", "every minute")
		_, err := Load(missingPath(t))
		assert.ErrorContains(t, err, "invalid flush_schedule")
	})
	t.Run("bool", func(t *testing.T) {
		t.Setenv("CRM_SEED", "maybe")
		_, err := Load(missingPath(t))
		assert.Error(t, err)
	})
	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
