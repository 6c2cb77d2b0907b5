package match

import (
	"context"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/inference"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

// Schema field names in the vector collection.
const (
	annNameField        = "kepler_name"
	annDispositionField = "koi_disposition"
	annVectorField      = "features"
)

// ANNConfig configures the vector-database-backed matcher.
type ANNConfig struct {
	Collection string
	TopK       int
	Threshold  float64
	Timeout    time.Duration
}

// ANNSearcher is the drop-in replacement for the brute-force scan when the
// corpus outgrows in-memory scanning: candidate vectors live pre-standardized
// in a vector collection and a cosine-metric ANN search replaces the full
// scan behind the same contract.
type ANNSearcher struct {
	client client.Client
	config ANNConfig
	logger logging.Logger
}

// NewANNSearcher creates a searcher over an established client connection.
func NewANNSearcher(cli client.Client, config ANNConfig, logger logging.Logger) (*ANNSearcher, error) {
	if cli == nil {
		return nil, errors.New(errors.ErrCodeMatchSearchFailed, "ann searcher requires a client")
	}
	if config.Collection == "" {
		return nil, errors.New(errors.ErrCodeMatchSearchFailed, "ann searcher requires a collection name")
	}
	if config.TopK <= 0 {
		config.TopK = 1
	}
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Second
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ANNSearcher{client: cli, config: config, logger: logger.Named("ann-matcher")}, nil
}

var _ inference.Matcher = (*ANNSearcher)(nil)

// BestMatch runs a cosine-metric top-K search and reports the closest named
// record.  A failed search surfaces as a typed error; the engine treats it
// as a non-fatal no-match.
func (s *ANNSearcher) BestMatch(ctx context.Context, v signal.FeatureVector) (inference.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sp, err := entity.NewIndexFlatSearchParam()
	if err != nil {
		return inference.Match{}, errors.Wrap(err, errors.ErrCodeMatchSearchFailed, "build search params")
	}

	query := queryVector(v)
	vec := make([]float32, len(query))
	for i, x := range query {
		vec[i] = float32(x)
	}

	results, err := s.client.Search(ctx, s.config.Collection, nil, "",
		[]string{annNameField, annDispositionField},
		[]entity.Vector{entity.FloatVector(vec)},
		annVectorField, entity.COSINE, s.config.TopK, sp)
	if err != nil {
		return inference.Match{}, errors.Wrap(err, errors.ErrCodeMatchSearchFailed, "vector search failed")
	}
	if len(results) == 0 || results[0].ResultCount == 0 {
		return inference.Match{}, nil
	}

	res := results[0]
	bestIdx, bestScore := 0, float64(res.Scores[0])
	for i := 1; i < res.ResultCount; i++ {
		if score := float64(res.Scores[i]); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	reported := clampUnit(bestScore)
	if bestScore <= s.config.Threshold {
		return inference.Match{Score: reported}, nil
	}

	name := columnString(res.Fields.GetColumn(annNameField), bestIdx)
	if name == "" {
		// Unnamed rows never count as a match even when close.
		return inference.Match{Score: reported}, nil
	}
	return inference.Match{
		Name:        name,
		Disposition: columnString(res.Fields.GetColumn(annDispositionField), bestIdx),
		Score:       reported,
		Matched:     true,
	}, nil
}

func columnString(col entity.Column, idx int) string {
	if col == nil {
		return ""
	}
	val, err := col.GetAsString(idx)
	if err != nil {
		return ""
	}
	return val
}
