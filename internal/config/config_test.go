package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresCounterURL(t *testing.T) {
	t.Setenv("COUNTER_API_BASE_URL", "")
	t.Setenv("CONFIG_FILE", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COUNTER_API_BASE_URL", "http://api.local")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("IMPORT_MAX_BYTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, int64(30<<20), cfg.ImportMaxBytes)
	assert.NotEmpty(t, cfg.GeocodeEndpoint)
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen_addr: \":9999\"\ncounter_base_url: http://file.local\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("COUNTER_API_BASE_URL", "http://env.local")
	t.Setenv("LISTEN_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.local", cfg.CounterBaseURL)
	assert.Equal(t, ":9999", cfg.ListenAddr)
}
