// Package config provides configuration loading, defaults, and validation for
// the exoplanet inference service.
package config

import (
	"fmt"
	"time"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
)

// Config is the root configuration object.  It is populated once at startup
// (file and/or EXOAI_* environment variables) and treated as immutable by all
// components; the hot-reload path delivers a fresh Config instead of mutating
// the live one.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Log        logging.LogConfig `mapstructure:"log"`
	Model      ModelConfig       `mapstructure:"model"`
	Corpus     CorpusConfig      `mapstructure:"corpus"`
	Matcher    MatcherConfig     `mapstructure:"matcher"`
	Calibrator CalibratorConfig  `mapstructure:"calibrator"`
	Fallback   FallbackConfig    `mapstructure:"fallback"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// AllowedOrigins configures CORS.  ["*"] keeps the permissive behaviour
	// the service has always exposed to its browser frontend.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ModelConfig locates the trained-model artifacts on disk.
type ModelConfig struct {
	// Path is the JSON-serialised tree-ensemble classifier.
	Path string `mapstructure:"path"`

	// ScalerPath is the JSON file with the fitted per-feature (mean, scale)
	// pairs, aligned to the 20-field vector order.
	ScalerPath string `mapstructure:"scaler_path"`

	// LabelsPath is the JSON file with the ordered disposition labels.
	// Empty means the built-in three-label decoder is used.
	LabelsPath string `mapstructure:"labels_path"`
}

// CorpusConfig locates the reference corpus.
type CorpusConfig struct {
	// Path is the NASA cumulative KOI CSV export.
	Path string `mapstructure:"path"`

	// NameColumn is the catalog-name column; rows with an empty value are
	// retained but excluded from similarity candidacy.
	NameColumn string `mapstructure:"name_column"`
}

// MatcherConfig tunes the similarity matcher.
type MatcherConfig struct {
	// Threshold is the minimum cosine similarity for a corpus row to be
	// reported as a match.
	Threshold float64 `mapstructure:"threshold"`

	// Backend selects the search implementation: "memory" (brute force over
	// the loaded corpus) or "milvus" (approximate nearest neighbour).
	Backend string `mapstructure:"backend"`

	Milvus MilvusConfig `mapstructure:"milvus"`
}

// MilvusConfig holds connection settings for the optional ANN backend.
type MilvusConfig struct {
	Address    string `mapstructure:"address"`
	Collection string `mapstructure:"collection"`
	TopK       int    `mapstructure:"top_k"`
}

// CalibratorConfig parameterises the floor-and-boost confidence policy.
type CalibratorConfig struct {
	StrongThreshold float64 `mapstructure:"strong_threshold"`
	StrongBoost     float64 `mapstructure:"strong_boost"`
	StrongCap       float64 `mapstructure:"strong_cap"`
	WeakThreshold   float64 `mapstructure:"weak_threshold"`
	WeakBoost       float64 `mapstructure:"weak_boost"`
	WeakCap         float64 `mapstructure:"weak_cap"`
	Floor           float64 `mapstructure:"floor"`
}

// FallbackConfig parameterises the rule-based degraded-mode predictor.
type FallbackConfig struct {
	EarthLikeConfidence  float64 `mapstructure:"earth_like_confidence"`
	SuperEarthConfidence float64 `mapstructure:"super_earth_confidence"`
	GasGiantConfidence   float64 `mapstructure:"gas_giant_confidence"`
	SimilarityBoost      float64 `mapstructure:"similarity_boost"`
	ConfidenceCap        float64 `mapstructure:"confidence_cap"`
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Validate checks cross-field constraints.  It is called after defaults are
// applied, so zero values for optional fields have already been filled in.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Matcher.Threshold < -1 || c.Matcher.Threshold > 1 {
		return fmt.Errorf("matcher.threshold must be in [-1, 1], got %g", c.Matcher.Threshold)
	}
	switch c.Matcher.Backend {
	case "memory", "milvus":
	default:
		return fmt.Errorf("matcher.backend must be \"memory\" or \"milvus\", got %q", c.Matcher.Backend)
	}
	if c.Matcher.Backend == "milvus" && c.Matcher.Milvus.Address == "" {
		return fmt.Errorf("matcher.milvus.address is required when backend is \"milvus\"")
	}
	if c.Calibrator.Floor < 0 || c.Calibrator.Floor > 1 {
		return fmt.Errorf("calibrator.floor must be in [0, 1], got %g", c.Calibrator.Floor)
	}
	if c.Calibrator.StrongCap < c.Calibrator.WeakCap {
		return fmt.Errorf("calibrator.strong_cap (%g) must be >= calibrator.weak_cap (%g)",
			c.Calibrator.StrongCap, c.Calibrator.WeakCap)
	}
	if c.Calibrator.StrongThreshold <= c.Calibrator.WeakThreshold {
		return fmt.Errorf("calibrator.strong_threshold (%g) must be > calibrator.weak_threshold (%g)",
			c.Calibrator.StrongThreshold, c.Calibrator.WeakThreshold)
	}
	if c.Fallback.ConfidenceCap < 0 || c.Fallback.ConfidenceCap > 1 {
		return fmt.Errorf("fallback.confidence_cap must be in [0, 1], got %g", c.Fallback.ConfidenceCap)
	}
	return nil
}
