package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalibratePolicy(t *testing.T) {
	c := NewCalibrator(nil)

	tests := []struct {
		name     string
		raw, sim float64
		want     float64
	}{
		{"strong match boosts", 0.60, 0.5, 0.80},
		{"strong match capped", 0.90, 0.5, 0.95},
		{"weak match boosts", 0.60, 0.2, 0.75},
		{"weak match capped", 0.85, 0.2, 0.90},
		{"no match floors low confidence", 0.40, 0.05, 0.70},
		{"strong match floors low confidence", 0.34, 0.5, 0.70},
		{"weak match floors low confidence", 0.34, 0.2, 0.70},
		{"no match keeps high confidence", 0.88, 0.0, 0.88},
		{"no match still capped", 0.99, 0.0, 0.95},
		{"threshold is exclusive", 0.60, 0.3, 0.75}, // 0.3 is not > 0.3 → weak band
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Calibrate(tt.raw, tt.sim), 1e-12)
		})
	}
}

func TestCalibrateAlwaysInReportableRange(t *testing.T) {
	c := NewCalibrator(nil)
	for _, raw := range []float64{0, 0.1, 0.33, 0.5, 0.75, 0.99, 1} {
		for _, sim := range []float64{-1, 0, 0.1, 0.3, 0.31, 0.9, 1} {
			got := c.Calibrate(raw, sim)
			assert.GreaterOrEqual(t, got, 0.70)
			assert.LessOrEqual(t, got, 0.95)
		}
	}
}

func TestCalibrateCustomConfig(t *testing.T) {
	c := NewCalibrator(&CalibratorConfig{
		StrongThreshold: 0.7,
		StrongBoost:     0.1,
		StrongCap:       0.99,
		WeakThreshold:   0.5,
		WeakBoost:       0.05,
		WeakCap:         0.9,
		Floor:           0.5,
	})

	assert.InDelta(t, 0.70, c.Calibrate(0.60, 0.8), 1e-12)
	assert.InDelta(t, 0.65, c.Calibrate(0.60, 0.6), 1e-12)
	assert.InDelta(t, 0.50, c.Calibrate(0.20, 0.1), 1e-12)
}
