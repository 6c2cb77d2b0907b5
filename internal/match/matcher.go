// Package match finds the reference record most similar to a query vector.
// Two interchangeable implementations satisfy the inference matcher
// contract: a brute-force in-memory scan suitable for corpora in the
// thousands of rows, and an approximate-nearest-neighbor searcher backed by
// a vector database for larger deployments.
package match

import (
	"context"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/corpus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/inference"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

// DefaultThreshold is the baseline similarity a best match must exceed to
// be reported as a match.  Deliberately permissive.
const DefaultThreshold = 0.3

// matchColumns returns the raw columns compared between query and corpus:
// every feature column except the derived habitable-zone flag, which the
// archive schema does not carry.
func matchColumns() []string {
	cols := make([]string, 0, signal.VectorWidth-1)
	for _, name := range signal.FieldNames {
		if name == signal.FieldHabitableZone {
			continue
		}
		cols = append(cols, name)
	}
	return cols
}

// BruteForceMatcher scans every candidate row per query.  Standardization
// parameters are fit on the candidate rows at match time, independent of the
// classifier's fitted standardizer; query and corpus sides always use the
// same local fit.
type BruteForceMatcher struct {
	corpus *corpus.Corpus
	// threshold holds math.Float64bits; it is the one matcher setting that
	// config hot reload may change while queries are in flight.
	threshold atomic.Uint64
	logger    logging.Logger
}

// NewBruteForceMatcher creates a matcher over a corpus.  A non-positive
// threshold selects the default.
func NewBruteForceMatcher(c *corpus.Corpus, threshold float64, logger logging.Logger) (*BruteForceMatcher, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeMatchSearchFailed, "matcher requires a corpus")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	m := &BruteForceMatcher{
		corpus: c,
		logger: logger.Named("matcher"),
	}
	m.SetThreshold(threshold)
	return m, nil
}

var _ inference.Matcher = (*BruteForceMatcher)(nil)

// Threshold returns the similarity a best match must exceed to be reported.
func (m *BruteForceMatcher) Threshold() float64 {
	return math.Float64frombits(m.threshold.Load())
}

// SetThreshold swaps the match threshold.  Non-positive values select the
// default.  Safe to call concurrently with BestMatch.
func (m *BruteForceMatcher) SetThreshold(t float64) {
	if t <= 0 {
		t = DefaultThreshold
	}
	m.threshold.Store(math.Float64bits(t))
}

// BestMatch returns the most similar named corpus row.  An empty corpus
// yields a no-match result; an unavailable corpus propagates its typed
// error for the caller to treat as "no match possible".
func (m *BruteForceMatcher) BestMatch(ctx context.Context, v signal.FeatureVector) (inference.Match, error) {
	cands, err := m.corpus.Candidates(ctx)
	if err != nil {
		return inference.Match{}, err
	}
	if len(cands) == 0 {
		return inference.Match{}, nil
	}

	cols := matchColumns()
	rows := candidateMatrix(cands, cols)
	means, scales := localFit(rows, len(cols))

	query := queryVector(v)
	standardize(query, means, scales)
	for _, row := range rows {
		standardize(row, means, scales)
	}

	bestIdx, bestScore := -1, math.Inf(-1)
	for i, row := range rows {
		score := cosineSimilarity(query, row)
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	reported := clampUnit(bestScore)
	if bestScore <= m.Threshold() {
		m.logger.Debug("no corpus row cleared the threshold",
			logging.Float64("best_score", reported),
			logging.Int("candidates", len(cands)),
		)
		return inference.Match{Score: reported}, nil
	}
	best := cands[bestIdx]
	return inference.Match{
		Name:        best.Name,
		Disposition: best.Disposition,
		Score:       reported,
		Matched:     true,
	}, nil
}

// candidateMatrix materializes each candidate's comparison vector; columns
// absent from a row are treated as 0.
func candidateMatrix(cands []corpus.ReferenceRecord, cols []string) [][]float64 {
	rows := make([][]float64, len(cands))
	for i, rec := range cands {
		row := make([]float64, len(cols))
		for j, name := range cols {
			row[j] = rec.Value(name)
		}
		rows[i] = row
	}
	return rows
}

// queryVector projects the full feature vector onto the comparison columns,
// preserving field order.
func queryVector(v signal.FeatureVector) []float64 {
	out := make([]float64, 0, signal.VectorWidth-1)
	for i, name := range signal.FieldNames {
		if name == signal.FieldHabitableZone {
			continue
		}
		out = append(out, v[i])
	}
	return out
}

// localFit computes per-column mean and scale over the candidate rows.  A
// degenerate column (constant, or a single row) gets scale 1 so that
// standardization is a plain shift.
func localFit(rows [][]float64, width int) (means, scales []float64) {
	means = make([]float64, width)
	scales = make([]float64, width)
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) || std == 0 {
			std = 1
		}
		means[j] = mean
		scales[j] = std
	}
	return means, scales
}

func standardize(v, means, scales []float64) {
	floats.Sub(v, means)
	floats.Div(v, scales)
}

// cosineSimilarity returns the cosine of the angle between two vectors, or
// 0 when either has zero magnitude.
func cosineSimilarity(a, b []float64) float64 {
	dot := floats.Dot(a, b)
	na := math.Sqrt(floats.Dot(a, a))
	nb := math.Sqrt(floats.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func clampUnit(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
