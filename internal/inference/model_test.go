package inference

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// twoTreeEnsemble splits on feature 0 at 0.5; both trees agree so the
// averaged distribution equals each leaf.
func twoTreeEnsemble() *TreeEnsemble {
	tree := decisionTree{Nodes: []treeNode{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Left: -1, Value: []float64{0.8, 0.15, 0.05}},
		{Left: -1, Value: []float64{0.1, 0.2, 0.7}},
	}}
	return &TreeEnsemble{NumFeatures: 3, NumClasses: 3, Trees: []decisionTree{tree, tree}}
}

func TestTreeEnsemblePredictProbabilities(t *testing.T) {
	m := twoTreeEnsemble()

	probs, err := m.PredictProbabilities([]float64{0.2, 0, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, 0.15, 0.05}, probs, 1e-12)

	probs, err = m.PredictProbabilities([]float64{0.9, 0, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.7}, probs, 1e-12)
}

func TestTreeEnsemblePredictArgmax(t *testing.T) {
	m := twoTreeEnsemble()

	idx, err := m.Predict([]float64{0.2, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = m.Predict([]float64{0.9, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestTreeEnsembleDimensionMismatch(t *testing.T) {
	m := twoTreeEnsemble()
	_, err := m.PredictProbabilities([]float64{0.2, 0})
	assert.Error(t, err)
}

func TestTreeEnsembleBadLeafWidth(t *testing.T) {
	m := &TreeEnsemble{
		NumFeatures: 1,
		NumClasses:  3,
		Trees: []decisionTree{{Nodes: []treeNode{
			{Left: -1, Value: []float64{1, 0}}, // two classes, model declares three
		}}},
	}
	_, err := m.PredictProbabilities([]float64{0})
	assert.Error(t, err)
}

func TestLoadTreeEnsembleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classifier.json")
	data, err := json.Marshal(twoTreeEnsemble())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := LoadTreeEnsemble(path)
	require.NoError(t, err)
	assert.Len(t, m.Trees, 2)
	assert.Equal(t, 3, m.NumClasses)
}

func TestLoadTreeEnsembleErrors(t *testing.T) {
	_, err := LoadTreeEnsemble("/nonexistent/classifier.json")
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelLoadFailed))

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"trees":[]}`), 0o644))
	_, err = LoadTreeEnsemble(empty)
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelLoadFailed))
}

func TestLabelDecoderRoundTrip(t *testing.T) {
	d := DefaultLabelDecoder()
	require.Equal(t, 3, d.Cardinality())

	label, err := d.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, transit.DispositionConfirmed, label)

	idx, ok := d.Index(transit.DispositionFalsePositive)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestLabelDecoderOutOfRange(t *testing.T) {
	d := DefaultLabelDecoder()
	_, err := d.Decode(3)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLabelUndecodable))
	_, err = d.Decode(-1)
	assert.Error(t, err)
}

func TestNewLabelDecoderWrongCardinality(t *testing.T) {
	_, err := NewLabelDecoder([]string{"YES", "NO"})
	assert.Error(t, err)
}

func TestLoadLabelDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.json")
	require.NoError(t, os.WriteFile(path, []byte(`["CONFIRMED","CANDIDATE","FALSE POSITIVE"]`), 0o644))

	d, err := LoadLabelDecoder(path)
	require.NoError(t, err)
	label, err := d.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, transit.DispositionCandidate, label)
}
