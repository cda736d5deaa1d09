package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "base.db", cfg.DBPath)
	assert.Equal(t, 200, cfg.History.MaxLimit)
	assert.Equal(t, 10*time.Minute, cfg.History.DedupeWindow)
	assert.Equal(t, 10*time.Second, cfg.History.RepeatInterval)
	assert.Equal(t, 2*time.Second, cfg.Status.Interval)
}

func TestLoad_ReadsFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	body := `
port: "9090"
db:
  path: "/var/lib/alpr/base.db"
history:
  max_limit: 100
  dedupe_window: "30m"
status:
  interval: "5s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644))
	t.Setenv("ALPR_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/lib/alpr/base.db", cfg.DBPath)
	assert.Equal(t, 100, cfg.History.MaxLimit)
	assert.Equal(t, 30*time.Minute, cfg.History.DedupeWindow)
	assert.Equal(t, 5*time.Second, cfg.Status.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsNonPositiveMaxLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("history:\n  max_limit: 0\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
