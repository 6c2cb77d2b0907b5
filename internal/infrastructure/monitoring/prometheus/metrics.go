// Package prometheus implements the InferenceMetrics facade with three
// variants: a Prometheus-backed collector for production, a noop collector
// for disabled telemetry, and an in-memory collector for unit tests.
package prometheus

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	prom "github.com/prometheus/client_golang/prometheus"
)

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// InferenceMetrics defines the unified metrics collection API for the
// inference core.  The engine, matcher, and corpus record operational
// telemetry through this interface so that the underlying implementation
// (Prometheus, in-memory, noop) can be swapped without touching business code.
type InferenceMetrics interface {
	// RecordPrediction records a single completed inference.
	RecordPrediction(ctx context.Context, params *PredictionMetricParams)

	// RecordFallback records an activation of the rule-based fallback path.
	RecordFallback(ctx context.Context)

	// RecordMatch records a similarity-search outcome.
	RecordMatch(ctx context.Context, matched bool, score float64)

	// RecordCorpusLoad records a reference-corpus load attempt.
	RecordCorpusLoad(ctx context.Context, rows int, durationMs float64, success bool)

	// GetPredictionLatencyHistogram returns the latency histogram for SLO
	// monitoring.
	GetPredictionLatencyHistogram() LatencyHistogram

	// GetCurrentStats snapshots the counters and latency percentiles.
	GetCurrentStats() *InferenceStats
}

// LatencyHistogram exposes percentile queries over observed latencies.
type LatencyHistogram interface {
	// Observe adds one latency sample in milliseconds.
	Observe(durationMs float64)

	// Percentile evaluates the sample at percentile p in [0, 100].
	Percentile(p float64) float64

	// Count is the number of samples observed so far.
	Count() int64

	// Sum is the running total of all samples.
	Sum() float64
}

// ---------------------------------------------------------------------------
// Parameter structs
// ---------------------------------------------------------------------------

// PredictionMetricParams carries the data for a single inference event.
type PredictionMetricParams struct {
	Disposition string  `json:"disposition"`
	MatchStatus string  `json:"match_status"`
	DurationMs  float64 `json:"duration_ms"`
	Success     bool    `json:"success"`
}

// InferenceStats is a point-in-time snapshot of inference-core metrics.
type InferenceStats struct {
	TotalPredictions      int64   `json:"total_predictions"`
	SuccessfulPredictions int64   `json:"successful_predictions"`
	FailedPredictions     int64   `json:"failed_predictions"`
	FallbackPredictions   int64   `json:"fallback_predictions"`
	MatchedQueries        int64   `json:"matched_queries"`
	UnmatchedQueries      int64   `json:"unmatched_queries"`
	AvgLatencyMs          float64 `json:"avg_latency_ms"`
	P50LatencyMs          float64 `json:"p50_latency_ms"`
	P95LatencyMs          float64 `json:"p95_latency_ms"`
	P99LatencyMs          float64 `json:"p99_latency_ms"`
	CorpusRows            int64   `json:"corpus_rows"`
}

// ---------------------------------------------------------------------------
// Prometheus implementation
// ---------------------------------------------------------------------------

const metricsPrefix = "exoai_inference_"

var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

type prometheusInferenceMetrics struct {
	predictionLatency  *prom.HistogramVec
	predictionTotal    *prom.CounterVec
	fallbackTotal      prom.Counter
	matchTotal         *prom.CounterVec
	similarityScore    prom.Histogram
	corpusLoadDuration *prom.HistogramVec
	corpusRows         prom.Gauge

	// in-memory tracking for GetCurrentStats / GetPredictionLatencyHistogram
	latencyHist   *latencyHistogram
	totalPred     atomic.Int64
	successPred   atomic.Int64
	failedPred    atomic.Int64
	fallbackPred  atomic.Int64
	matchedQ      atomic.Int64
	unmatchedQ    atomic.Int64
	corpusRowsVal atomic.Int64
}

// NewPrometheusInferenceMetrics builds the production collector and registers
// every metric with registerer (nil selects the default registry).
func NewPrometheusInferenceMetrics(registerer prom.Registerer) (*prometheusInferenceMetrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	m := &prometheusInferenceMetrics{
		latencyHist: newLatencyHistogram(),
	}

	m.predictionLatency = prom.NewHistogramVec(prom.HistogramOpts{
		Name:    metricsPrefix + "prediction_duration_milliseconds",
		Help:    "Histogram of end-to-end prediction latency in milliseconds.",
		Buckets: defaultLatencyBuckets,
	}, []string{"disposition", "match_status"})

	m.predictionTotal = prom.NewCounterVec(prom.CounterOpts{
		Name: metricsPrefix + "prediction_total",
		Help: "Total number of predictions.",
	}, []string{"disposition", "match_status", "status"})

	m.fallbackTotal = prom.NewCounter(prom.CounterOpts{
		Name: metricsPrefix + "fallback_total",
		Help: "Total number of rule-based fallback activations.",
	})

	m.matchTotal = prom.NewCounterVec(prom.CounterOpts{
		Name: metricsPrefix + "match_total",
		Help: "Total number of similarity-search outcomes.",
	}, []string{"result"})

	m.similarityScore = prom.NewHistogram(prom.HistogramOpts{
		Name:    metricsPrefix + "similarity_score",
		Help:    "Distribution of best similarity scores per query.",
		Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	m.corpusLoadDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Name:    metricsPrefix + "corpus_load_duration_milliseconds",
		Help:    "Histogram of reference-corpus load duration in milliseconds.",
		Buckets: defaultLatencyBuckets,
	}, []string{"status"})

	m.corpusRows = prom.NewGauge(prom.GaugeOpts{
		Name: metricsPrefix + "corpus_rows",
		Help: "Number of rows in the loaded reference corpus.",
	})

	collectors := []prom.Collector{
		m.predictionLatency,
		m.predictionTotal,
		m.fallbackTotal,
		m.matchTotal,
		m.similarityScore,
		m.corpusLoadDuration,
		m.corpusRows,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *prometheusInferenceMetrics) RecordPrediction(_ context.Context, p *PredictionMetricParams) {
	if p == nil {
		return
	}
	status := "success"
	if !p.Success {
		status = "failure"
	}

	m.predictionLatency.WithLabelValues(p.Disposition, p.MatchStatus).Observe(p.DurationMs)
	m.predictionTotal.WithLabelValues(p.Disposition, p.MatchStatus, status).Inc()

	m.latencyHist.Observe(p.DurationMs)
	m.totalPred.Add(1)
	if p.Success {
		m.successPred.Add(1)
	} else {
		m.failedPred.Add(1)
	}
}

func (m *prometheusInferenceMetrics) RecordFallback(_ context.Context) {
	m.fallbackTotal.Inc()
	m.fallbackPred.Add(1)
}

func (m *prometheusInferenceMetrics) RecordMatch(_ context.Context, matched bool, score float64) {
	result := "miss"
	if matched {
		result = "hit"
		m.matchedQ.Add(1)
	} else {
		m.unmatchedQ.Add(1)
	}
	m.matchTotal.WithLabelValues(result).Inc()
	m.similarityScore.Observe(score)
}

func (m *prometheusInferenceMetrics) RecordCorpusLoad(_ context.Context, rows int, durationMs float64, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.corpusLoadDuration.WithLabelValues(status).Observe(durationMs)
	if success {
		m.corpusRows.Set(float64(rows))
		m.corpusRowsVal.Store(int64(rows))
	}
}

func (m *prometheusInferenceMetrics) GetPredictionLatencyHistogram() LatencyHistogram {
	return m.latencyHist
}

func (m *prometheusInferenceMetrics) GetCurrentStats() *InferenceStats {
	total := m.totalPred.Load()

	var avgLatency float64
	if total > 0 {
		avgLatency = m.latencyHist.Sum() / float64(total)
	}

	return &InferenceStats{
		TotalPredictions:      total,
		SuccessfulPredictions: m.successPred.Load(),
		FailedPredictions:     m.failedPred.Load(),
		FallbackPredictions:   m.fallbackPred.Load(),
		MatchedQueries:        m.matchedQ.Load(),
		UnmatchedQueries:      m.unmatchedQ.Load(),
		AvgLatencyMs:          avgLatency,
		P50LatencyMs:          m.latencyHist.Percentile(50),
		P95LatencyMs:          m.latencyHist.Percentile(95),
		P99LatencyMs:          m.latencyHist.Percentile(99),
		CorpusRows:            m.corpusRowsVal.Load(),
	}
}

// ---------------------------------------------------------------------------
// Noop implementation
// ---------------------------------------------------------------------------

type noopInferenceMetrics struct{}

// NewNoopInferenceMetrics returns a no-op metrics implementation.
func NewNoopInferenceMetrics() *noopInferenceMetrics {
	return &noopInferenceMetrics{}
}

func (n *noopInferenceMetrics) RecordPrediction(context.Context, *PredictionMetricParams) {}
func (n *noopInferenceMetrics) RecordFallback(context.Context)                            {}
func (n *noopInferenceMetrics) RecordMatch(context.Context, bool, float64)                {}
func (n *noopInferenceMetrics) RecordCorpusLoad(context.Context, int, float64, bool)      {}

func (n *noopInferenceMetrics) GetPredictionLatencyHistogram() LatencyHistogram {
	return newLatencyHistogram()
}

func (n *noopInferenceMetrics) GetCurrentStats() *InferenceStats {
	return &InferenceStats{}
}

// ---------------------------------------------------------------------------
// In-memory implementation for tests
// ---------------------------------------------------------------------------

type inMemoryInferenceMetrics struct {
	mu sync.Mutex

	predictions []*PredictionMetricParams
	fallbacks   int64
	matched     int64
	unmatched   int64
	scores      []float64
	corpusRows  int64
	latencyHist *latencyHistogram
}

// NewInMemoryInferenceMetrics returns a collector that keeps every recorded
// event, so tests can assert on exactly what was emitted.
func NewInMemoryInferenceMetrics() *inMemoryInferenceMetrics {
	return &inMemoryInferenceMetrics{
		latencyHist: newLatencyHistogram(),
	}
}

func (m *inMemoryInferenceMetrics) RecordPrediction(_ context.Context, p *PredictionMetricParams) {
	if p == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.predictions = append(m.predictions, &cp)
	m.latencyHist.observeUnlocked(p.DurationMs)
}

func (m *inMemoryInferenceMetrics) RecordFallback(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks++
}

func (m *inMemoryInferenceMetrics) RecordMatch(_ context.Context, matched bool, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if matched {
		m.matched++
	} else {
		m.unmatched++
	}
	m.scores = append(m.scores, score)
}

func (m *inMemoryInferenceMetrics) RecordCorpusLoad(_ context.Context, rows int, _ float64, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.corpusRows = int64(rows)
	}
}

func (m *inMemoryInferenceMetrics) GetPredictionLatencyHistogram() LatencyHistogram {
	return m.latencyHist
}

func (m *inMemoryInferenceMetrics) GetCurrentStats() *InferenceStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := int64(len(m.predictions))
	var success, failed int64
	var sumLatency float64
	for _, p := range m.predictions {
		if p.Success {
			success++
		} else {
			failed++
		}
		sumLatency += p.DurationMs
	}

	var avgLatency float64
	if total > 0 {
		avgLatency = sumLatency / float64(total)
	}

	return &InferenceStats{
		TotalPredictions:      total,
		SuccessfulPredictions: success,
		FailedPredictions:     failed,
		FallbackPredictions:   m.fallbacks,
		MatchedQueries:        m.matched,
		UnmatchedQueries:      m.unmatched,
		AvgLatencyMs:          avgLatency,
		P50LatencyMs:          m.latencyHist.Percentile(50),
		P95LatencyMs:          m.latencyHist.Percentile(95),
		P99LatencyMs:          m.latencyHist.Percentile(99),
		CorpusRows:            m.corpusRows,
	}
}

// GetRecordedPredictions returns a copy of all recorded prediction params.
func (m *inMemoryInferenceMetrics) GetRecordedPredictions() []*PredictionMetricParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*PredictionMetricParams, len(m.predictions))
	for i, p := range m.predictions {
		cp := *p
		out[i] = &cp
	}
	return out
}

// GetRecordedScores returns a copy of all recorded similarity scores.
func (m *inMemoryInferenceMetrics) GetRecordedScores() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.scores))
	copy(out, m.scores)
	return out
}

// ---------------------------------------------------------------------------
// latencyHistogram keeps raw samples for exact percentiles
// ---------------------------------------------------------------------------

type latencyHistogram struct {
	mu      sync.RWMutex
	samples []float64
	sum     float64
}

func newLatencyHistogram() *latencyHistogram {
	return &latencyHistogram{samples: make([]float64, 0, 1024)}
}

func (h *latencyHistogram) Observe(durationMs float64) {
	h.mu.Lock()
	h.samples = append(h.samples, durationMs)
	h.sum += durationMs
	h.mu.Unlock()
}

// observeUnlocked records a sample for callers that already serialize access
// at a higher level.
func (h *latencyHistogram) observeUnlocked(durationMs float64) {
	h.samples = append(h.samples, durationMs)
	h.sum += durationMs
}

// Percentile interpolates linearly between the two nearest ranks.  It sorts
// a snapshot of the samples, so observers are never blocked by readers.
func (h *latencyHistogram) Percentile(p float64) float64 {
	h.mu.RLock()
	snap := append([]float64(nil), h.samples...)
	h.mu.RUnlock()

	n := len(snap)
	if n == 0 {
		return 0
	}
	sort.Float64s(snap)

	if p <= 0 {
		return snap[0]
	}
	if p >= 100 {
		return snap[n-1]
	}

	rank := (p / 100) * float64(n-1)
	lower := int(math.Floor(rank))
	upper := lower + 1
	if upper >= n {
		return snap[n-1]
	}
	frac := rank - float64(lower)
	return snap[lower] + frac*(snap[upper]-snap[lower])
}

func (h *latencyHistogram) Count() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return int64(len(h.samples))
}

func (h *latencyHistogram) Sum() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sum
}

var (
	_ InferenceMetrics = (*prometheusInferenceMetrics)(nil)
	_ InferenceMetrics = (*noopInferenceMetrics)(nil)
	_ InferenceMetrics = (*inMemoryInferenceMetrics)(nil)
	_ LatencyHistogram = (*latencyHistogram)(nil)
)
