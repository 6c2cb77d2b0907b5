package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "EXOAI"

// envBoundKeys lists every configuration key so that viper.Unmarshal sees
// EXOAI_* overrides even when no config file supplies the key.  Viper only
// considers keys it knows about; AutomaticEnv alone is not enough.
var envBoundKeys = []string{
	"server.host", "server.port", "server.read_timeout", "server.write_timeout",
	"server.shutdown_timeout", "server.allowed_origins",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	"model.path", "model.scaler_path", "model.labels_path",
	"corpus.path", "corpus.name_column",
	"matcher.threshold", "matcher.backend",
	"matcher.milvus.address", "matcher.milvus.collection", "matcher.milvus.top_k",
	"calibrator.strong_threshold", "calibrator.strong_boost", "calibrator.strong_cap",
	"calibrator.weak_threshold", "calibrator.weak_boost", "calibrator.weak_cap",
	"calibrator.floor",
	"fallback.earth_like_confidence", "fallback.super_earth_confidence",
	"fallback.gas_giant_confidence", "fallback.similarity_boost", "fallback.confidence_cap",
	"metrics.enabled", "metrics.path",
}

// newViper builds a Viper instance with the service conventions: YAML files,
// EXOAI_ env prefix, and a "." → "_" key replacer so "matcher.threshold"
// resolves to EXOAI_MATCHER_THRESHOLD.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envBoundKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// Load parses the YAML file at configPath, merges EXOAI_* environment
// overrides on top, fills unset fields with defaults and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from EXOAI_* environment variables alone, the
// usual path for container deployments.  Keys follow
// EXOAI_<SECTION>_<FIELD>, e.g. EXOAI_SERVER_PORT or EXOAI_CORPUS_PATH.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch invokes onChange with a freshly parsed Config each time the file at
// configPath changes on disk.  The caller decides which changes are safe to
// apply to a running process (currently the matcher threshold).
//
// Watch returns immediately; viper runs the fsnotify watcher on a background
// goroutine.  A changed file that fails to parse or validate is skipped and
// onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Read errors are ignored here; callers go through Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad panics on any load error.  For main() where a bad config is
// always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
