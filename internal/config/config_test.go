package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Matcher.Backend)
	assert.InDelta(t, 0.3, cfg.Matcher.Threshold, 1e-9)
	assert.InDelta(t, 0.70, cfg.Calibrator.Floor, 1e-9)
	assert.InDelta(t, 0.95, cfg.Calibrator.StrongCap, 1e-9)
	assert.InDelta(t, 0.80, cfg.Fallback.EarthLikeConfidence, 1e-9)
	assert.Equal(t, "kepler_name", cfg.Corpus.NameColumn)
}

func TestDefaultsValidate(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad threshold", func(c *Config) { c.Matcher.Threshold = 1.5 }},
		{"bad backend", func(c *Config) { c.Matcher.Backend = "redis" }},
		{"milvus without address", func(c *Config) { c.Matcher.Backend = "milvus"; c.Matcher.Milvus.Address = "" }},
		{"floor out of range", func(c *Config) { c.Calibrator.Floor = 1.2 }},
		{"caps inverted", func(c *Config) { c.Calibrator.StrongCap = 0.5; c.Calibrator.WeakCap = 0.9 }},
		{"thresholds inverted", func(c *Config) { c.Calibrator.StrongThreshold = 0.05 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
matcher:
  threshold: 0.5
corpus:
  path: /data/koi.csv
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.5, cfg.Matcher.Threshold, 1e-9)
	assert.Equal(t, "/data/koi.csv", cfg.Corpus.Path)
	// Unset sections still get defaults.
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("EXOAI_SERVER_PORT", "8123")
	t.Setenv("EXOAI_MATCHER_THRESHOLD", "0.7")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Server.Port)
	assert.InDelta(t, 0.7, cfg.Matcher.Threshold, 1e-9)
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/nonexistent/config.yaml") })
}
