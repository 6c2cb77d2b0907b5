package inference

import (
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// FallbackConfig holds the fixed confidences and the similarity boost used
// in degraded mode.
type FallbackConfig struct {
	EarthLikeConfidence  float64 `json:"earth_like_confidence" yaml:"earth_like_confidence"`
	SuperEarthConfidence float64 `json:"super_earth_confidence" yaml:"super_earth_confidence"`
	GasGiantConfidence   float64 `json:"gas_giant_confidence" yaml:"gas_giant_confidence"`

	// SimilarityBoost scales the similarity score added to the base
	// confidence when a corpus match is found, capped at ConfidenceCap.
	SimilarityBoost float64 `json:"similarity_boost" yaml:"similarity_boost"`
	ConfidenceCap   float64 `json:"confidence_cap" yaml:"confidence_cap"`
}

// DefaultFallbackConfig returns production defaults.
func DefaultFallbackConfig() *FallbackConfig {
	return &FallbackConfig{
		EarthLikeConfidence:  0.80,
		SuperEarthConfidence: 0.75,
		GasGiantConfidence:   0.85,
		SimilarityBoost:      0.3,
		ConfidenceCap:        0.95,
	}
}

// FallbackResult is the rule-based classification produced in degraded mode.
type FallbackResult struct {
	Disposition   transit.Disposition
	Probabilities map[string]float64
	Confidence    float64
}

// FallbackPredictor is a deterministic rule-based classifier invoked only
// when the primary adapter signals structural incompatibility.  It
// guarantees a structured result from simple thresholds on raw radius and
// equilibrium temperature.
type FallbackPredictor struct {
	config *FallbackConfig
}

// NewFallbackPredictor creates a predictor.  A nil config selects defaults.
func NewFallbackPredictor(config *FallbackConfig) *FallbackPredictor {
	if config == nil {
		config = DefaultFallbackConfig()
	}
	return &FallbackPredictor{config: config}
}

// Predict classifies a raw feature vector:
//
//	radius < 1.5 and temperature in [200, 400] K → CONFIRMED (Earth-like regime)
//	radius < 2.5                                 → CANDIDATE (Super-Earth regime)
//	otherwise                                    → CANDIDATE (gas-giant regime)
func (f *FallbackPredictor) Predict(v signal.FeatureVector) FallbackResult {
	radius := v.Radius()
	teq := v.EquilibriumTemp()

	var disposition transit.Disposition
	var confidence float64
	switch {
	case radius < 1.5 && teq >= 200 && teq <= 400:
		disposition = transit.DispositionConfirmed
		confidence = f.config.EarthLikeConfidence
	case radius < 2.5:
		disposition = transit.DispositionCandidate
		confidence = f.config.SuperEarthConfidence
	default:
		disposition = transit.DispositionCandidate
		confidence = f.config.GasGiantConfidence
	}

	return FallbackResult{
		Disposition:   disposition,
		Probabilities: f.distribution(disposition, confidence),
		Confidence:    confidence,
	}
}

// Boost raises a base confidence proportionally to a found match's
// similarity score: min(cap, base + similarity × boost).
func (f *FallbackPredictor) Boost(base, similarity float64) float64 {
	return minF(f.config.ConfidenceCap, base+similarity*f.config.SimilarityBoost)
}

// distribution concentrates the confidence mass on the predicted class and
// spreads the remainder evenly, so the map still sums to 1.
func (f *FallbackPredictor) distribution(predicted transit.Disposition, confidence float64) map[string]float64 {
	labels := transit.Dispositions()
	rest := (1 - confidence) / float64(len(labels)-1)
	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		if l == predicted {
			out[string(l)] = confidence
		} else {
			out[string(l)] = rest
		}
	}
	return out
}
