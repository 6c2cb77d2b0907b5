package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/corpus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

type staticSource struct {
	records []corpus.ReferenceRecord
	err     error
}

func (s *staticSource) Load(_ context.Context) ([]corpus.ReferenceRecord, error) {
	return s.records, s.err
}

func newCorpus(t *testing.T, records []corpus.ReferenceRecord) *corpus.Corpus {
	t.Helper()
	return corpus.New(&staticSource{records: records}, nil, nil)
}

// recordFields builds a full comparison-column map: documented defaults
// overridden by the given values, mirroring what the builder produces for a
// sparse query.
func recordFields(overrides map[string]float64) map[string]float64 {
	fields := make(map[string]float64, signal.VectorWidth)
	for _, name := range signal.FieldNames {
		if name == signal.FieldHabitableZone {
			continue
		}
		d, _ := signal.DefaultFor(name)
		fields[name] = d
	}
	for name, val := range overrides {
		fields[name] = val
	}
	return fields
}

func referenceCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	return newCorpus(t, []corpus.ReferenceRecord{
		{
			Name:        "Kepler-62f",
			Disposition: "CONFIRMED",
			Fields: recordFields(map[string]float64{
				"koi_period": 267.3, "koi_prad": 1.41, "koi_teq": 208, "koi_steff": 4925,
			}),
		},
		{
			Name:        "Kepler-7b",
			Disposition: "CONFIRMED",
			Fields: recordFields(map[string]float64{
				"koi_period": 4.89, "koi_prad": 17.9, "koi_teq": 1540, "koi_steff": 5933,
				"koi_depth": 7300, "koi_insol": 950,
			}),
		},
		{
			Name:        "Kepler-1520b",
			Disposition: "CANDIDATE",
			Fields: recordFields(map[string]float64{
				"koi_period": 0.65, "koi_prad": 0.3, "koi_teq": 2100, "koi_steff": 4440,
				"koi_depth": 120, "koi_insol": 4000,
			}),
		},
	})
}

func TestBestMatchFindsNearIdenticalRecord(t *testing.T) {
	m, err := NewBruteForceMatcher(referenceCorpus(t), 0, nil)
	require.NoError(t, err)

	v, err := signal.Build(map[string]float64{
		"koi_period": 267.3, "koi_prad": 1.41, "koi_teq": 208, "koi_steff": 4925,
	})
	require.NoError(t, err)

	match, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)

	assert.True(t, match.Matched)
	assert.Equal(t, "Kepler-62f", match.Name)
	assert.Equal(t, "CONFIRMED", match.Disposition)
	assert.Greater(t, match.Score, 0.3)
}

func TestBestMatchReportsScoreOnNoMatch(t *testing.T) {
	// A near-unit threshold forces the no-match path while keeping the
	// observed maximum visible for diagnostics.
	m, err := NewBruteForceMatcher(referenceCorpus(t), 0.999999, nil)
	require.NoError(t, err)

	v, err := signal.Build(map[string]float64{"koi_prad": 5.0, "koi_teq": 1000, "koi_steff": 8000})
	require.NoError(t, err)

	match, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)

	assert.False(t, match.Matched)
	assert.Empty(t, match.Name)
	assert.GreaterOrEqual(t, match.Score, 0.0)
	assert.LessOrEqual(t, match.Score, 1.0)
}

func TestSetThresholdTakesEffect(t *testing.T) {
	m, err := NewBruteForceMatcher(referenceCorpus(t), 0.999999, nil)
	require.NoError(t, err)

	v, err := signal.Build(map[string]float64{
		"koi_period": 267.3, "koi_prad": 1.41, "koi_teq": 208, "koi_steff": 4925,
	})
	require.NoError(t, err)

	match, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)
	assert.False(t, match.Matched)

	m.SetThreshold(0.3)
	match, err = m.BestMatch(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, match.Matched)
	assert.Equal(t, "Kepler-62f", match.Name)

	// Non-positive values select the default.
	m.SetThreshold(-1)
	assert.InDelta(t, DefaultThreshold, m.Threshold(), 1e-12)
}

func TestBestMatchDeterministic(t *testing.T) {
	m, err := NewBruteForceMatcher(referenceCorpus(t), 0, nil)
	require.NoError(t, err)

	v, err := signal.Build(map[string]float64{"koi_period": 12.3, "koi_prad": 2.1})
	require.NoError(t, err)

	first, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)
	second, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBestMatchEmptyCorpus(t *testing.T) {
	m, err := NewBruteForceMatcher(newCorpus(t, nil), 0, nil)
	require.NoError(t, err)

	v, err := signal.Build(nil)
	require.NoError(t, err)

	match, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)
	assert.False(t, match.Matched)
	assert.Zero(t, match.Score)
}

func TestBestMatchUnnamedRowsAreNotCandidates(t *testing.T) {
	c := newCorpus(t, []corpus.ReferenceRecord{
		{Disposition: "CANDIDATE", Fields: recordFields(nil)},
	})
	m, err := NewBruteForceMatcher(c, 0, nil)
	require.NoError(t, err)

	v, err := signal.Build(nil)
	require.NoError(t, err)

	match, err := m.BestMatch(context.Background(), v)
	require.NoError(t, err)
	assert.False(t, match.Matched)
}

func TestBestMatchCorpusUnavailable(t *testing.T) {
	c := corpus.New(&staticSource{err: errors.CorpusUnavailable("source missing")}, nil, nil)
	m, err := NewBruteForceMatcher(c, 0, nil)
	require.NoError(t, err)

	v, err := signal.Build(nil)
	require.NoError(t, err)

	_, err = m.BestMatch(context.Background(), v)
	require.Error(t, err)
	assert.True(t, errors.IsCorpusUnavailable(err))
}

func TestNewBruteForceMatcherRequiresCorpus(t *testing.T) {
	_, err := NewBruteForceMatcher(nil, 0, nil)
	require.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-12)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-12)
	// Zero magnitude never divides by zero.
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}

func TestLocalFitDegenerateColumns(t *testing.T) {
	rows := [][]float64{{1, 5}, {1, 7}}
	means, scales := localFit(rows, 2)

	// Constant column: plain shift, scale 1.
	assert.InDelta(t, 1.0, means[0], 1e-12)
	assert.InDelta(t, 1.0, scales[0], 1e-12)
	assert.InDelta(t, 6.0, means[1], 1e-12)
	assert.Greater(t, scales[1], 0.0)
}

func TestClampUnit(t *testing.T) {
	assert.Zero(t, clampUnit(-0.4))
	assert.InDelta(t, 0.5, clampUnit(0.5), 1e-12)
	assert.InDelta(t, 1.0, clampUnit(1.3), 1e-12)
}
