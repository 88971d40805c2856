package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
}

func TestLoad_fileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
  read_timeout: 3s
storage:
  driver: redis
  redis:
    addr: "cache:6379"
shop:
  whatsapp_number: "+5491100000000"
telemetry:
  trace_sample_ratio: 7
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("CVSHOP_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("CVSHOP_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis.internal:6380", cfg.Storage.Redis.Addr)
	assert.Equal(t, "+5491100000000", cfg.Shop.WhatsAppNumber)
	assert.Equal(t, "CV Accesorios", cfg.Shop.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1.0, cfg.Telemetry.TraceSampleRatio)
}

func TestLoad_configPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o600))

	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "unknown driver",
			data: "storage:\n  driver: mongo\n",
		},
		{
			name: "postgres without dsn",
			data: "storage:\n  driver: postgres\n",
		},
		{
			name: "broken yaml",
			data: "server: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
