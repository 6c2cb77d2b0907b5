package inference

import (
	"math"
	"strconv"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// ClassifierAdapter wraps the opaque trained model and translates its failure
// modes into the typed taxonomy.  Structural incompatibility is detected by a
// capability probe at construction (a trial prediction against the
// all-defaults vector) rather than by pattern-matching error text, which is
// brittle across model-library versions.
type ClassifierAdapter struct {
	model   Classifier
	decoder *LabelDecoder
	logger  logging.Logger

	// probeErr is non-nil when the capability probe failed.  Every Classify
	// call then signals ModelIncompatible so the engine can route to the
	// fallback predictor; the condition is invisible to end users.
	probeErr *errors.AppError
}

// NewClassifierAdapter probes the model once and returns the adapter.  A nil
// model or a probe failure does not error here: the adapter is still usable
// and reports the incompatibility per call, keeping the degraded state
// per-request as required.
func NewClassifierAdapter(model Classifier, decoder *LabelDecoder, logger logging.Logger) *ClassifierAdapter {
	if decoder == nil {
		decoder = DefaultLabelDecoder()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	a := &ClassifierAdapter{
		model:   model,
		decoder: decoder,
		logger:  logger.Named("adapter"),
	}
	a.probeErr = a.probe()
	if a.probeErr != nil {
		a.logger.Warn("classifier failed capability probe, requests will use the fallback predictor",
			logging.Err(a.probeErr))
	}
	return a
}

// probe runs a trial prediction and checks the structural contract: a
// distribution of the decoder's cardinality whose mass sums to ~1.
func (a *ClassifierAdapter) probe() *errors.AppError {
	if a.model == nil {
		return errors.ModelIncompatible("no classifier loaded")
	}

	probs, err := a.model.PredictProbabilities(probeVector())
	if err != nil {
		return errors.ModelIncompatible("trial prediction failed").WithCause(err)
	}
	if len(probs) != a.decoder.Cardinality() {
		return errors.ModelIncompatible("class count mismatch").
			WithDetail("probe returned " + strconv.Itoa(len(probs)) + " classes")
	}
	var sum float64
	for _, p := range probs {
		if math.IsNaN(p) || p < 0 {
			return errors.ModelIncompatible("trial distribution contains invalid mass")
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-3 {
		return errors.ModelIncompatible("trial distribution does not sum to 1")
	}

	if _, err := a.model.Predict(probeVector()); err != nil {
		return errors.ModelIncompatible("trial label prediction failed").WithCause(err)
	}
	return nil
}

// Incompatible reports whether the capability probe failed.
func (a *ClassifierAdapter) Incompatible() bool {
	return a.probeErr != nil
}

// Classify runs the wrapped model on a standardized vector and returns the
// decoded disposition plus the per-class probability map.
//
// Failure modes: ErrCodeModelIncompatible when the probe failed (the caller
// recovers via the fallback predictor) and ErrCodeModelError for any other
// classifier failure (surfaced, no fallback attempted).
func (a *ClassifierAdapter) Classify(standardized []float64) (transit.Disposition, map[string]float64, error) {
	if a.probeErr != nil {
		return "", nil, a.probeErr
	}

	probs, err := a.model.PredictProbabilities(standardized)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeModelError, "probability prediction failed")
	}
	if len(probs) != a.decoder.Cardinality() {
		return "", nil, errors.Newf(errors.ErrCodeModelError,
			"classifier emitted %d classes, decoder has %d", len(probs), a.decoder.Cardinality())
	}

	idx, err := a.model.Predict(standardized)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeModelError, "label prediction failed")
	}
	label, err := a.decoder.Decode(idx)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeModelError, "label decoding failed")
	}

	dist := make(map[string]float64, len(probs))
	for i, p := range probs {
		l, derr := a.decoder.Decode(i)
		if derr != nil {
			return "", nil, errors.Wrap(derr, errors.ErrCodeModelError, "label decoding failed")
		}
		dist[string(l)] = p
	}
	return label, dist, nil
}
