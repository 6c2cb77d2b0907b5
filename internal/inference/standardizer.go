package inference

import (
	"encoding/json"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

// StandardizationParameters holds the per-field (mean, scale) pairs fitted
// once offline, aligned to the 20-field vector order.  They are immutable at
// inference time and shared read-only across concurrent requests.
type StandardizationParameters struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// LoadStandardizationParameters reads a fitted-scaler JSON artifact.
func LoadStandardizationParameters(path string) (*StandardizationParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed, "failed to read scaler artifact").
			WithDetail("path=" + path)
	}
	var p StandardizationParameters
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed, "failed to parse scaler artifact").
			WithDetail("path=" + path)
	}
	return &p, nil
}

// Standardizer applies the fitted affine transform (x - mean) / scale per
// field.  The same transform must reach both the classifier input and any
// vector compared against classifier-space embeddings; mixing raw and
// standardized vectors silently degrades quality.
type Standardizer struct {
	params *StandardizationParameters
}

// NewStandardizer validates the fitted parameters against the fixed vector
// width and returns a ready transform.
func NewStandardizer(params *StandardizationParameters) (*Standardizer, error) {
	if params == nil {
		return nil, errors.New(errors.ErrCodeModelNotLoaded, "standardization parameters are nil")
	}
	if len(params.Means) != signal.VectorWidth || len(params.Scales) != signal.VectorWidth {
		return nil, errors.Newf(errors.ErrCodeFeatureDimMismatch,
			"scaler has %d/%d fields, expected %d", len(params.Means), len(params.Scales), signal.VectorWidth)
	}
	for i, s := range params.Scales {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, errors.Newf(errors.ErrCodeModelLoadFailed,
				"scaler field %q has unusable scale %g", signal.FieldNames[i], s)
		}
	}
	return &Standardizer{params: params}, nil
}

// Transform returns the standardized copy of a raw vector.  The input is not
// modified.
func (s *Standardizer) Transform(raw []float64) ([]float64, error) {
	if len(raw) != signal.VectorWidth {
		return nil, errors.Newf(errors.ErrCodeFeatureDimMismatch,
			"vector has %d values, expected %d", len(raw), signal.VectorWidth)
	}
	out := make([]float64, len(raw))
	floats.SubTo(out, raw, s.params.Means)
	floats.Div(out, s.params.Scales)
	return out, nil
}

// IdentityParameters builds a no-op scaler, used in tests and when no
// fitted scaler artifact is configured.
func IdentityParameters() *StandardizationParameters {
	p := &StandardizationParameters{
		Means:  make([]float64, signal.VectorWidth),
		Scales: make([]float64, signal.VectorWidth),
	}
	for i := range p.Scales {
		p.Scales[i] = 1
	}
	return p
}
