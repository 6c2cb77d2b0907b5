package config

import "time"

// ApplyDefaults fills in every unset field with its production default.
// The calibrator and matcher numbers are the canonical policy constants; they
// remain configurable so deployments can tighten them without a rebuild.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Model.Path == "" {
		cfg.Model.Path = "artifacts/classifier.json"
	}
	if cfg.Model.ScalerPath == "" {
		cfg.Model.ScalerPath = "artifacts/scaler.json"
	}

	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "data/cumulative.csv"
	}
	if cfg.Corpus.NameColumn == "" {
		cfg.Corpus.NameColumn = "kepler_name"
	}

	if cfg.Matcher.Threshold == 0 {
		cfg.Matcher.Threshold = 0.3
	}
	if cfg.Matcher.Backend == "" {
		cfg.Matcher.Backend = "memory"
	}
	if cfg.Matcher.Milvus.Collection == "" {
		cfg.Matcher.Milvus.Collection = "koi_features"
	}
	if cfg.Matcher.Milvus.TopK == 0 {
		cfg.Matcher.Milvus.TopK = 1
	}

	if cfg.Calibrator.StrongThreshold == 0 {
		cfg.Calibrator.StrongThreshold = 0.3
	}
	if cfg.Calibrator.StrongBoost == 0 {
		cfg.Calibrator.StrongBoost = 0.2
	}
	if cfg.Calibrator.StrongCap == 0 {
		cfg.Calibrator.StrongCap = 0.95
	}
	if cfg.Calibrator.WeakThreshold == 0 {
		cfg.Calibrator.WeakThreshold = 0.1
	}
	if cfg.Calibrator.WeakBoost == 0 {
		cfg.Calibrator.WeakBoost = 0.15
	}
	if cfg.Calibrator.WeakCap == 0 {
		cfg.Calibrator.WeakCap = 0.90
	}
	if cfg.Calibrator.Floor == 0 {
		cfg.Calibrator.Floor = 0.70
	}

	if cfg.Fallback.EarthLikeConfidence == 0 {
		cfg.Fallback.EarthLikeConfidence = 0.80
	}
	if cfg.Fallback.SuperEarthConfidence == 0 {
		cfg.Fallback.SuperEarthConfidence = 0.75
	}
	if cfg.Fallback.GasGiantConfidence == 0 {
		cfg.Fallback.GasGiantConfidence = 0.85
	}
	if cfg.Fallback.SimilarityBoost == 0 {
		cfg.Fallback.SimilarityBoost = 0.3
	}
	if cfg.Fallback.ConfidenceCap == 0 {
		cfg.Fallback.ConfidenceCap = 0.95
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
