package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.SeedDemoData)
	assert.Empty(t, cfg.Brokers())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("NOTIFIER_WORKERS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 2, cfg.NotifierWorkers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("duration", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "soon")
		_, err := Load()
		require.ErrorContains(t, err, "parse env:")
	})
}
