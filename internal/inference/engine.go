package inference

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	monprom "github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/prometheus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// ---------------------------------------------------------------------------
// Matcher contract
// ---------------------------------------------------------------------------

// Match is the best corpus resemblance found for one query.  Score carries
// the observed maximum even when Matched is false, which is useful for
// diagnostics on non-matches.
type Match struct {
	Name        string
	Disposition string
	Score       float64
	Matched     bool
}

// Matcher finds the reference record most similar to a query vector.  The
// brute-force in-memory matcher and the ANN-backed searcher both satisfy
// this contract.
type Matcher interface {
	BestMatch(ctx context.Context, v signal.FeatureVector) (Match, error)
}

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// EngineParams collects the engine's injected dependencies.  Classifier,
// standardization parameters, label decoder and the matcher's corpus are all
// loaded once at process start and shared read-only across requests.
type EngineParams struct {
	Adapter      *ClassifierAdapter
	Standardizer *Standardizer
	Matcher      Matcher
	Fallback     *FallbackPredictor
	Calibrator   *Calibrator
	Metrics      monprom.InferenceMetrics
	Logger       logging.Logger
}

// Engine owns the full inference pipeline: build → standardize → classify
// (or fall back) → derive attributes → match → calibrate → assemble.
type Engine struct {
	adapter      *ClassifierAdapter
	standardizer *Standardizer
	matcher      Matcher
	fallback     *FallbackPredictor
	calibrator   *Calibrator
	metrics      monprom.InferenceMetrics
	logger       logging.Logger
}

// NewEngine wires the pipeline.  Adapter, Standardizer and Matcher are
// required; nil Fallback, Calibrator, Metrics and Logger select defaults.
func NewEngine(p EngineParams) (*Engine, error) {
	if p.Adapter == nil {
		return nil, errors.New(errors.ErrCodeModelNotLoaded, "engine requires a classifier adapter")
	}
	if p.Standardizer == nil {
		return nil, errors.New(errors.ErrCodeModelNotLoaded, "engine requires a standardizer")
	}
	if p.Matcher == nil {
		return nil, errors.New(errors.ErrCodeMatchSearchFailed, "engine requires a matcher")
	}
	if p.Fallback == nil {
		p.Fallback = NewFallbackPredictor(nil)
	}
	if p.Calibrator == nil {
		p.Calibrator = NewCalibrator(nil)
	}
	if p.Metrics == nil {
		p.Metrics = monprom.NewNoopInferenceMetrics()
	}
	if p.Logger == nil {
		p.Logger = logging.NewNopLogger()
	}
	return &Engine{
		adapter:      p.Adapter,
		standardizer: p.Standardizer,
		matcher:      p.Matcher,
		fallback:     p.Fallback,
		calibrator:   p.Calibrator,
		metrics:      p.Metrics,
		logger:       p.Logger.Named("engine"),
	}, nil
}

// Infer classifies one candidate transit signal.  Inference is stateless and
// side-effect-free per request; any number of calls may run concurrently.
//
// Error behaviour follows the taxonomy: invalid input surfaces as
// ErrCodeInvalidFeatureValue; classifier incompatibility is recovered
// internally via the fallback predictor and never surfaces; any other
// classifier failure returns a typed ErrCodeModelError.
func (e *Engine) Infer(ctx context.Context, input map[string]float64) (*transit.PredictionResult, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := e.logger.With(logging.String("request_id", requestID))

	v, err := signal.Build(input)
	if err != nil {
		log.Warn("rejected input", logging.Err(err))
		return nil, err
	}

	attrs := signal.DeriveAttributes(v)

	standardized, err := e.standardizer.Transform(v.Values())
	if err != nil {
		return nil, err
	}

	label, probs, classifyErr := e.adapter.Classify(standardized)
	if classifyErr != nil && !errors.IsModelIncompatible(classifyErr) {
		e.recordPrediction(ctx, "", transit.MatchStatusError, start, false)
		log.Error("classifier failed", logging.Err(classifyErr))
		return nil, errors.Wrap(classifyErr, errors.CodeUnknown, "inference failed")
	}

	// Best-effort similarity search: an unavailable corpus or a failed
	// search means "no match possible", never a fatal error.
	m, matchErr := e.matcher.BestMatch(ctx, v)
	if matchErr != nil {
		if errors.IsCorpusUnavailable(matchErr) {
			log.Debug("corpus unavailable, matching skipped")
		} else {
			log.Warn("similarity search failed", logging.Err(matchErr))
		}
		m = Match{}
	}
	e.metrics.RecordMatch(ctx, m.Matched, m.Score)

	var result *transit.PredictionResult
	if classifyErr != nil {
		// Degraded path: the classifier is structurally incompatible for
		// this request; rules still produce a labeled prediction.
		e.metrics.RecordFallback(ctx)
		fb := e.fallback.Predict(v)
		confidence := fb.Confidence
		if m.Matched {
			confidence = e.fallback.Boost(fb.Confidence, m.Score)
		}
		result = &transit.PredictionResult{
			Prediction:        fb.Disposition,
			Probabilities:     fb.Probabilities,
			Confidence:        confidence,
			HabitabilityScore: attrs.HabitabilityScore,
			PlanetType:        attrs.PlanetType,
			StarType:          attrs.StarType,
			PlanetName:        e.planetName(m, v),
			MatchStatus:       transit.MatchStatusFallback,
			SimilarityScore:   m.Score,
		}
	} else {
		status := transit.MatchStatusGenerated
		if m.Matched {
			status = transit.MatchStatusExisting
		}
		result = &transit.PredictionResult{
			Prediction:        label,
			Probabilities:     probs,
			Confidence:        e.calibrator.Calibrate(probs[string(label)], m.Score),
			HabitabilityScore: attrs.HabitabilityScore,
			PlanetType:        attrs.PlanetType,
			StarType:          attrs.StarType,
			PlanetName:        e.planetName(m, v),
			MatchStatus:       status,
			SimilarityScore:   m.Score,
		}
	}

	e.recordPrediction(ctx, result.Prediction, result.MatchStatus, start, true)
	log.Info("prediction served",
		logging.String("disposition", string(result.Prediction)),
		logging.String("match_status", string(result.MatchStatus)),
		logging.Float64("confidence", result.Confidence),
		logging.Float64("similarity", result.SimilarityScore),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// planetName picks the matched catalog name, or a deterministic placeholder
// derived from the raw vector so that identical inputs always yield the same
// name.
func (e *Engine) planetName(m Match, v signal.FeatureVector) string {
	if m.Matched && m.Name != "" {
		return m.Name
	}
	return generatedName(v)
}

// generatedName hashes the raw vector into a stable placeholder name.
func generatedName(v signal.FeatureVector) string {
	h := fnv.New32a()
	var buf [8]byte
	for _, f := range v {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("KOI-AI-%08x", h.Sum32())
}

func (e *Engine) recordPrediction(ctx context.Context, d transit.Disposition, s transit.MatchStatus, start time.Time, success bool) {
	e.metrics.RecordPrediction(ctx, &monprom.PredictionMetricParams{
		Disposition: string(d),
		MatchStatus: string(s),
		DurationMs:  float64(time.Since(start).Microseconds()) / 1000.0,
		Success:     success,
	})
}
