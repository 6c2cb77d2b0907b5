// Package inference implements the classification core: the opaque classifier
// contract and its tree-ensemble implementation, the fitted standardizer, the
// classifier adapter with its capability probe, the rule-based fallback
// predictor, the confidence calibrator, and the engine that orchestrates them
// into a single Infer operation.
package inference

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// ---------------------------------------------------------------------------
// Classifier — the opaque trained-model contract
// ---------------------------------------------------------------------------

// Classifier is the narrow contract every trained model must satisfy.  The
// rest of the core never inspects a model's internals; library-specific
// compatibility concerns live entirely behind the ClassifierAdapter.
type Classifier interface {
	// Predict returns the label index for a standardized feature vector.
	Predict(features []float64) (int, error)

	// PredictProbabilities returns the per-class probability distribution for
	// a standardized feature vector, in label-index order.
	PredictProbabilities(features []float64) ([]float64, error)
}

// ---------------------------------------------------------------------------
// Tree-ensemble classifier
// ---------------------------------------------------------------------------

// treeNode is one node of a decision tree.  Left < 0 marks a leaf, in which
// case Value holds the per-class distribution.
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// TreeEnsemble is a JSON-serialised gradient-boosted / random-forest style
// classifier: per-tree leaf distributions are averaged and the argmax wins.
type TreeEnsemble struct {
	NumFeatures int            `json:"num_features"`
	NumClasses  int            `json:"num_classes"`
	Trees       []decisionTree `json:"trees"`
}

// LoadTreeEnsemble reads a JSON tree-ensemble artifact from disk.
func LoadTreeEnsemble(path string) (*TreeEnsemble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed, "failed to read model artifact").
			WithDetail("path=" + path)
	}
	var m TreeEnsemble
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed, "failed to parse model artifact").
			WithDetail("path=" + path)
	}
	if len(m.Trees) == 0 {
		return nil, errors.New(errors.ErrCodeModelLoadFailed, "model artifact contains no trees").
			WithDetail("path=" + path)
	}
	return &m, nil
}

// evalTree walks one tree to its leaf distribution.
func (m *TreeEnsemble) evalTree(t *decisionTree, features []float64) ([]float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return nil, fmt.Errorf("tree node index %d out of range", idx)
		}
		n := &t.Nodes[idx]
		if n.Left < 0 {
			if len(n.Value) != m.NumClasses {
				return nil, fmt.Errorf("leaf distribution has %d classes, model declares %d",
					len(n.Value), m.NumClasses)
			}
			return n.Value, nil
		}
		if n.Feature < 0 || n.Feature >= len(features) {
			return nil, fmt.Errorf("tree references feature %d, vector has %d", n.Feature, len(features))
		}
		if features[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return nil, fmt.Errorf("tree walk did not terminate (cycle in node graph)")
}

// PredictProbabilities implements Classifier.
func (m *TreeEnsemble) PredictProbabilities(features []float64) ([]float64, error) {
	if len(features) != m.NumFeatures {
		return nil, fmt.Errorf("feature vector has %d values, model expects %d",
			len(features), m.NumFeatures)
	}

	probs := make([]float64, m.NumClasses)
	for i := range m.Trees {
		leaf, err := m.evalTree(&m.Trees[i], features)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		for c, p := range leaf {
			probs[c] += p
		}
	}

	inv := 1.0 / float64(len(m.Trees))
	for c := range probs {
		probs[c] *= inv
	}
	return probs, nil
}

// Predict implements Classifier via argmax over PredictProbabilities.
func (m *TreeEnsemble) Predict(features []float64) (int, error) {
	probs, err := m.PredictProbabilities(features)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best, nil
}

var _ Classifier = (*TreeEnsemble)(nil)

// ---------------------------------------------------------------------------
// LabelDecoder
// ---------------------------------------------------------------------------

// LabelDecoder is the bidirectional mapping between label indices and the
// three disposition strings.  Cardinality is fixed at 3; every index the
// classifier can emit must have a decoding.
type LabelDecoder struct {
	labels []transit.Disposition
}

// NewLabelDecoder builds a decoder from an ordered label list.
func NewLabelDecoder(labels []string) (*LabelDecoder, error) {
	if len(labels) != len(transit.Dispositions()) {
		return nil, errors.Newf(errors.ErrCodeLabelUndecodable,
			"label decoder requires exactly %d labels, got %d", len(transit.Dispositions()), len(labels))
	}
	out := make([]transit.Disposition, len(labels))
	for i, l := range labels {
		out[i] = transit.Disposition(l)
	}
	return &LabelDecoder{labels: out}, nil
}

// DefaultLabelDecoder returns the decoder in canonical fitting order.
func DefaultLabelDecoder() *LabelDecoder {
	return &LabelDecoder{labels: transit.Dispositions()}
}

// LoadLabelDecoder reads an ordered JSON string array from disk.
func LoadLabelDecoder(path string) (*LabelDecoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed, "failed to read label artifact").
			WithDetail("path=" + path)
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeModelLoadFailed, "failed to parse label artifact").
			WithDetail("path=" + path)
	}
	return NewLabelDecoder(labels)
}

// Cardinality returns the number of labels.
func (d *LabelDecoder) Cardinality() int { return len(d.labels) }

// Decode maps a label index to its disposition string.
func (d *LabelDecoder) Decode(idx int) (transit.Disposition, error) {
	if idx < 0 || idx >= len(d.labels) {
		return "", errors.Newf(errors.ErrCodeLabelUndecodable, "label index %d has no decoding", idx)
	}
	return d.labels[idx], nil
}

// Index maps a disposition back to its label index.
func (d *LabelDecoder) Index(label transit.Disposition) (int, bool) {
	for i, l := range d.labels {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// Labels returns the ordered label list.
func (d *LabelDecoder) Labels() []transit.Disposition {
	out := make([]transit.Disposition, len(d.labels))
	copy(out, d.labels)
	return out
}

// probeVector returns the raw all-defaults vector used by the adapter's
// capability probe.  The probe only checks structural shape, so skipping the
// standardizer is fine.
func probeVector() []float64 {
	v, _ := signal.Build(nil)
	return v.Values()
}
