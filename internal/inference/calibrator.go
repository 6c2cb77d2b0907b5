package inference

// CalibratorConfig holds the tunable floor-and-boost policy parameters.
// The policy never reports below the floor once a classification is made,
// treating low-probability outputs as under-confident rather than
// untrustworthy.  This is a deliberate product choice, so the numbers stay
// configurable instead of hard-coded.
type CalibratorConfig struct {
	// A similarity above StrongThreshold boosts confidence by StrongBoost,
	// capped at StrongCap.
	StrongThreshold float64 `json:"strong_threshold" yaml:"strong_threshold"`
	StrongBoost     float64 `json:"strong_boost" yaml:"strong_boost"`
	StrongCap       float64 `json:"strong_cap" yaml:"strong_cap"`

	// A similarity above WeakThreshold boosts confidence by WeakBoost,
	// capped at WeakCap.
	WeakThreshold float64 `json:"weak_threshold" yaml:"weak_threshold"`
	WeakBoost     float64 `json:"weak_boost" yaml:"weak_boost"`
	WeakCap       float64 `json:"weak_cap" yaml:"weak_cap"`

	// Floor is the minimum reported confidence on any branch.
	Floor float64 `json:"floor" yaml:"floor"`
}

// DefaultCalibratorConfig returns the canonical policy constants.
func DefaultCalibratorConfig() *CalibratorConfig {
	return &CalibratorConfig{
		StrongThreshold: 0.3,
		StrongBoost:     0.2,
		StrongCap:       0.95,
		WeakThreshold:   0.1,
		WeakBoost:       0.15,
		WeakCap:         0.90,
		Floor:           0.70,
	}
}

// Calibrator blends the classifier's raw confidence with the similarity
// score into the final user-facing confidence.
type Calibrator struct {
	config *CalibratorConfig
}

// NewCalibrator creates a calibrator.  A nil config selects the defaults.
func NewCalibrator(config *CalibratorConfig) *Calibrator {
	if config == nil {
		config = DefaultCalibratorConfig()
	}
	return &Calibrator{config: config}
}

// Calibrate applies the floor-and-boost policy:
//
//	similarity > strong threshold → min(strong cap, raw + strong boost)
//	similarity > weak threshold   → min(weak cap, raw + weak boost)
//	otherwise                     → max(floor, raw)
//
// The result is clamped to [floor, strong cap] on every branch, so a boosted
// low-probability output still reports inside the documented range.
func (c *Calibrator) Calibrate(rawModelConfidence, similarityScore float64) float64 {
	cfg := c.config
	var out float64
	switch {
	case similarityScore > cfg.StrongThreshold:
		out = minF(cfg.StrongCap, rawModelConfidence+cfg.StrongBoost)
	case similarityScore > cfg.WeakThreshold:
		out = minF(cfg.WeakCap, rawModelConfidence+cfg.WeakBoost)
	default:
		out = rawModelConfidence
	}
	return minF(cfg.StrongCap, maxF(cfg.Floor, out))
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
