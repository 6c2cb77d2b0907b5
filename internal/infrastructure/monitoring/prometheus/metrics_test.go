package prometheus

import (
	"context"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetricsRegister(t *testing.T) {
	reg := prom.NewRegistry()
	m, err := NewPrometheusInferenceMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	// Re-registering the same metric names must fail.
	_, err = NewPrometheusInferenceMetrics(reg)
	assert.Error(t, err)
}

func TestPrometheusRecordPrediction(t *testing.T) {
	reg := prom.NewRegistry()
	m, err := NewPrometheusInferenceMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordPrediction(ctx, &PredictionMetricParams{
		Disposition: "CONFIRMED",
		MatchStatus: "matched_existing",
		DurationMs:  12.5,
		Success:     true,
	})
	m.RecordPrediction(ctx, &PredictionMetricParams{
		Disposition: "CANDIDATE",
		MatchStatus: "generated_name",
		DurationMs:  7.5,
		Success:     false,
	})
	m.RecordPrediction(ctx, nil) // must be a no-op

	stats := m.GetCurrentStats()
	assert.Equal(t, int64(2), stats.TotalPredictions)
	assert.Equal(t, int64(1), stats.SuccessfulPredictions)
	assert.Equal(t, int64(1), stats.FailedPredictions)
	assert.InDelta(t, 10.0, stats.AvgLatencyMs, 1e-9)
}

func TestPrometheusRecordMatchAndFallback(t *testing.T) {
	reg := prom.NewRegistry()
	m, err := NewPrometheusInferenceMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordMatch(ctx, true, 0.82)
	m.RecordMatch(ctx, false, 0.05)
	m.RecordFallback(ctx)
	m.RecordCorpusLoad(ctx, 9564, 120, true)

	stats := m.GetCurrentStats()
	assert.Equal(t, int64(1), stats.MatchedQueries)
	assert.Equal(t, int64(1), stats.UnmatchedQueries)
	assert.Equal(t, int64(1), stats.FallbackPredictions)
	assert.Equal(t, int64(9564), stats.CorpusRows)
}

func TestNoopMetricsSafe(t *testing.T) {
	m := NewNoopInferenceMetrics()
	ctx := context.Background()

	m.RecordPrediction(ctx, nil)
	m.RecordPrediction(ctx, &PredictionMetricParams{})
	m.RecordFallback(ctx)
	m.RecordMatch(ctx, true, 1)
	m.RecordCorpusLoad(ctx, 0, 0, false)

	assert.NotNil(t, m.GetCurrentStats())
	assert.Equal(t, int64(0), m.GetPredictionLatencyHistogram().Count())
}

func TestInMemoryMetricsSnapshot(t *testing.T) {
	m := NewInMemoryInferenceMetrics()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		m.RecordPrediction(ctx, &PredictionMetricParams{DurationMs: float64(i + 1), Success: true})
	}
	m.RecordMatch(ctx, true, 0.44)

	stats := m.GetCurrentStats()
	assert.Equal(t, int64(4), stats.TotalPredictions)
	assert.InDelta(t, 2.5, stats.AvgLatencyMs, 1e-9)
	assert.Equal(t, []float64{0.44}, m.GetRecordedScores())
	assert.Len(t, m.GetRecordedPredictions(), 4)
}

func TestLatencyHistogramPercentiles(t *testing.T) {
	h := newLatencyHistogram()
	for i := 1; i <= 100; i++ {
		h.Observe(float64(i))
	}

	assert.Equal(t, int64(100), h.Count())
	assert.InDelta(t, 5050, h.Sum(), 1e-9)
	assert.InDelta(t, 50.5, h.Percentile(50), 1e-9)
	assert.InDelta(t, 95.05, h.Percentile(95), 1e-9)
	assert.InDelta(t, 1, h.Percentile(0), 1e-9)
	assert.InDelta(t, 100, h.Percentile(100), 1e-9)
}

func TestLatencyHistogramEmpty(t *testing.T) {
	h := newLatencyHistogram()
	assert.Equal(t, 0.0, h.Percentile(50))
}
