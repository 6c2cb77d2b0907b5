package inference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

func TestStandardizerTransform(t *testing.T) {
	p := IdentityParameters()
	p.Means[signal.IdxPeriod] = 100
	p.Scales[signal.IdxPeriod] = 50

	s, err := NewStandardizer(p)
	require.NoError(t, err)

	raw := make([]float64, signal.VectorWidth)
	raw[signal.IdxPeriod] = 200

	out, err := s.Transform(raw)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[signal.IdxPeriod], 1e-12)
	// Identity fields untouched.
	assert.InDelta(t, 0.0, out[signal.IdxRadius], 1e-12)
	// Input must not be modified.
	assert.InDelta(t, 200.0, raw[signal.IdxPeriod], 1e-12)
}

func TestNewStandardizerRejectsBadParams(t *testing.T) {
	_, err := NewStandardizer(nil)
	assert.Error(t, err)

	short := &StandardizationParameters{Means: []float64{0}, Scales: []float64{1}}
	_, err = NewStandardizer(short)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDimMismatch))

	zeroScale := IdentityParameters()
	zeroScale.Scales[3] = 0
	_, err = NewStandardizer(zeroScale)
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelLoadFailed))
}

func TestTransformDimensionCheck(t *testing.T) {
	s, err := NewStandardizer(IdentityParameters())
	require.NoError(t, err)

	_, err = s.Transform([]float64{1, 2, 3})
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDimMismatch))
}

func TestLoadStandardizationParameters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scaler.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"means":[1,2],"scales":[3,4]}`), 0o644))

	p, err := LoadStandardizationParameters(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, p.Means)
	assert.Equal(t, []float64{3, 4}, p.Scales)

	_, err = LoadStandardizationParameters("/nonexistent/scaler.json")
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelLoadFailed))
}
