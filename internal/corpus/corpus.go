// Package corpus holds the reference table of historical transit signals
// with known catalog names.  The table is loaded once from a tabular source,
// immutable afterwards, and used only as a similarity-search source — it is
// distinct from the data the classifier was trained on.
package corpus

import (
	"context"
	"sync"
	"time"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	monprom "github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/prometheus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// habitableScoreCutoff is the habitability score at or above which a corpus
// row counts as potentially habitable in the stats summary.
const habitableScoreCutoff = 70.0

// ReferenceRecord is one historical row: a sparse set of raw feature values,
// the archive disposition, and the catalog name when one was assigned.
// Fields holds only the values actually present in the source; absent
// columns stay absent and are treated as zero by the matcher.
type ReferenceRecord struct {
	Name        string
	Disposition string
	Fields      map[string]float64
}

// Value returns the record's value for a raw field name, or 0 when the
// source had no value for it.
func (r ReferenceRecord) Value(field string) float64 {
	return r.Fields[field]
}

// Source is a one-shot tabular origin for reference records.
type Source interface {
	Load(ctx context.Context) ([]ReferenceRecord, error)
}

// Corpus is the lazily-loaded, immutable-after-load reference table.
//
// The first caller of any accessor triggers the single load; concurrent
// first-callers block on the same load rather than racing to populate the
// table.  A failed load is sticky: the corpus stays empty for the process
// lifetime and every accessor reports the same typed error, which the
// matcher treats as "no match possible".
type Corpus struct {
	source  Source
	logger  logging.Logger
	metrics monprom.InferenceMetrics

	once    sync.Once
	records []ReferenceRecord
	loadErr error
}

// New creates an unloaded corpus over a source.  Nil logger and metrics
// select no-op implementations.
func New(source Source, logger logging.Logger, metrics monprom.InferenceMetrics) *Corpus {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = monprom.NewNoopInferenceMetrics()
	}
	return &Corpus{
		source:  source,
		logger:  logger.Named("corpus"),
		metrics: metrics,
	}
}

// Load reads the source exactly once.  Subsequent calls return the outcome
// of the first load without re-reading.
func (c *Corpus) Load(ctx context.Context) error {
	c.once.Do(func() {
		start := time.Now()
		if c.source == nil {
			c.loadErr = errors.CorpusUnavailable("no corpus source configured")
			c.metrics.RecordCorpusLoad(ctx, 0, 0, false)
			return
		}
		records, err := c.source.Load(ctx)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		if err != nil {
			c.loadErr = err
			c.metrics.RecordCorpusLoad(ctx, 0, elapsed, false)
			c.logger.Warn("corpus load failed", logging.Err(err))
			return
		}
		c.records = records
		c.metrics.RecordCorpusLoad(ctx, len(records), elapsed, true)
		c.logger.Info("corpus loaded",
			logging.Int("rows", len(records)),
			logging.Float64("elapsed_ms", elapsed),
		)
	})
	return c.loadErr
}

// Rows returns every loaded record, including rows without a catalog name.
// The returned slice is shared and must not be mutated.
func (c *Corpus) Rows(ctx context.Context) ([]ReferenceRecord, error) {
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c.records, nil
}

// Candidates returns the rows eligible for similarity matching: only rows
// with a non-empty catalog name participate.
func (c *Corpus) Candidates(ctx context.Context) ([]ReferenceRecord, error) {
	rows, err := c.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReferenceRecord, 0, len(rows))
	for _, r := range rows {
		if r.Name != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// Stats summarises the loaded table.  ModelAccuracy is not a corpus
// property and is left zero for the caller to fill in.
func (c *Corpus) Stats(ctx context.Context) (transit.CorpusStats, error) {
	rows, err := c.Rows(ctx)
	if err != nil {
		return transit.CorpusStats{}, err
	}
	stats := transit.CorpusStats{TotalRecords: len(rows)}
	for _, r := range rows {
		switch transit.Disposition(r.Disposition) {
		case transit.DispositionConfirmed:
			stats.Confirmed++
		case transit.DispositionCandidate:
			stats.Candidates++
		case transit.DispositionFalsePositive:
			stats.FalsePositives++
		}
		// Rows missing the physical columns would score against Earth-like
		// defaults, so only measured rows count toward the habitable tally.
		_, hasRadius := r.Fields["koi_prad"]
		_, hasTemp := r.Fields["koi_teq"]
		if !hasRadius || !hasTemp {
			continue
		}
		if attrs, ok := deriveRowAttributes(r); ok && attrs.HabitabilityScore >= habitableScoreCutoff {
			stats.Habitable++
		}
	}
	return stats, nil
}

// Page returns named rows shaped for visualization listings, in load order.
// Offset past the end yields an empty page; a non-positive limit yields an
// empty page as well.
func (c *Corpus) Page(ctx context.Context, offset, limit int) ([]transit.ExoplanetSummary, error) {
	named, err := c.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(named) || limit <= 0 {
		return []transit.ExoplanetSummary{}, nil
	}
	end := offset + limit
	if end > len(named) {
		end = len(named)
	}
	out := make([]transit.ExoplanetSummary, 0, end-offset)
	for _, r := range named[offset:end] {
		summary := transit.ExoplanetSummary{
			Name:        r.Name,
			Period:      r.Value("koi_period"),
			Radius:      r.Value("koi_prad"),
			Temperature: r.Value("koi_teq"),
			Disposition: r.Disposition,
		}
		if attrs, ok := deriveRowAttributes(r); ok {
			summary.HabitabilityScore = attrs.HabitabilityScore
		}
		out = append(out, summary)
	}
	return out, nil
}

// deriveRowAttributes runs the attribute rules over a corpus row.  Rows with
// values the builder rejects simply report no attributes.
func deriveRowAttributes(r ReferenceRecord) (signal.Attributes, bool) {
	v, err := signal.Build(r.Fields)
	if err != nil {
		return signal.Attributes{}, false
	}
	return signal.DeriveAttributes(v), true
}
