package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "./data/ruota.db", cfg.SQLitePath)
	assert.Equal(t, "ruota:history", cfg.RedisStream)
	assert.Equal(t, 1500*time.Millisecond, cfg.PenaltyDelay)
	assert.Zero(t, cfg.TurnTimeout)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=memory\nTURN_TIMEOUT=30s\nSEED=99\n"), 0o600))
	// godotenv never overrides variables already set, so register cleanup for the ones it sets.
	for _, k := range []string{"STORE_DRIVER", "TURN_TIMEOUT", "SEED"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 30*time.Second, cfg.TurnTimeout)
	assert.Equal(t, uint64(99), cfg.Seed)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PENALTY_DELAY", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.PenaltyDelay)
}

func TestLoadErrors(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("PENALTY_DELAY", "soon")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		_, err := Load("")
		assert.ErrorContains(t, err, "unknown STORE_DRIVER")
	})
	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", DriverPostgres)
		t.Setenv("PG_DSN", "")
		_, err := Load("")
		assert.ErrorContains(t, err, "PG_DSN")
	})
}
