package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PATHFINDER_PROVIDER", "PATHFINDER_API_URL", "PATHFINDER_TIMEOUT",
		"PATHFINDER_RETRY_ATTEMPTS", "PATHFINDER_CAREER", "PATHFINDER_AUTO_SELECT",
		"PATHFINDER_DB", "PATHFINDER_LOG", "PATHFINDER_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  provider: http
  base_url: https://data.example.com/v1
  timeout: 5s
  retry:
    max_attempts: 3
career: data-scientist
auto_select_first: false
log:
  path: /tmp/pathfinder.log
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Catalog.Provider)
	assert.Equal(t, "https://data.example.com/v1", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 3, cfg.Catalog.Retry.MaxAttempts)
	assert.Equal(t, 20, cfg.Catalog.ExamChunkSize, "unset keys keep defaults")
	assert.Equal(t, "data-scientist", cfg.CareerID)
	assert.False(t, cfg.AutoSelectFirst)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("career: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATHFINDER_API_URL", "http://localhost:9000")
	t.Setenv("PATHFINDER_CAREER", "designer")
	t.Setenv("PATHFINDER_AUTO_SELECT", "false")
	t.Setenv("PATHFINDER_TIMEOUT", "2s")
	t.Setenv("PATHFINDER_LOG", "/tmp/x.log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Catalog.Provider, "API URL implies the http provider")
	assert.Equal(t, "http://localhost:9000", cfg.Catalog.BaseURL)
	assert.Equal(t, "designer", cfg.CareerID)
	assert.False(t, cfg.AutoSelectFirst)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "/tmp/x.log", cfg.Log.Path)
}

func TestLoad_InvalidEnv(t *testing.T) {
	for _, key := range []string{"PATHFINDER_AUTO_SELECT", "PATHFINDER_TIMEOUT", "PATHFINDER_RETRY_ATTEMPTS"} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "sometimes")
			_, err := Load("")
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.CareerID = "nurse"
	want.Catalog.ExamChunkSize = 7

	require.NoError(t, want.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no career", func(c *Config) { c.CareerID = "" }},
		{"negative timeout", func(c *Config) { c.FetchTimeout = -time.Second }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad provider", func(c *Config) { c.Catalog.Provider = "smoke-signals" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("PATHFINDER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/pathfinder/config.yaml", p)

	t.Setenv("PATHFINDER_CONFIG", "/etc/pf.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/pf.yaml", p)
}
