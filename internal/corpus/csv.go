package corpus

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/domain/signal"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

const (
	// csvNameColumn is the catalog-name column in the archive export.
	csvNameColumn = "kepler_name"

	// csvDispositionColumn is the archive disposition column.
	csvDispositionColumn = "koi_disposition"
)

// CSVSource reads reference records from a cumulative archive CSV export.
// Exports carry a '#'-prefixed metadata prelude before the header row; the
// reader skips those lines.
type CSVSource struct {
	path       string
	nameColumn string
}

// NewCSVSource creates a source over a CSV file path.  An empty nameColumn
// selects the archive's catalog-name column.
func NewCSVSource(path, nameColumn string) *CSVSource {
	if nameColumn == "" {
		nameColumn = csvNameColumn
	}
	return &CSVSource{path: path, nameColumn: nameColumn}
}

// Load parses the file into reference records.  Numeric cells that are
// empty or unparsable are simply absent from the record; the row itself is
// kept.  Any I/O or parse failure at the file level is reported as a
// corpus-unavailable error.
func (s *CSVSource) Load(ctx context.Context) ([]ReferenceRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.CorpusUnavailable("open corpus file").WithCause(err).WithDetail(s.path)
	}
	defer f.Close()
	return parseRecords(ctx, f, s.nameColumn)
}

func parseRecords(ctx context.Context, r io.Reader, nameColumn string) ([]ReferenceRecord, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.CorpusUnavailable("read corpus header").WithCause(err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	// Every raw feature column except the derived habitable-zone flag may
	// come from the source.
	numeric := make([]string, 0, signal.VectorWidth-1)
	for _, name := range signal.FieldNames {
		if name == signal.FieldHabitableZone {
			continue
		}
		numeric = append(numeric, name)
	}

	var records []ReferenceRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.CorpusUnavailable("corpus load canceled").WithCause(err)
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.CorpusUnavailable("read corpus row").WithCause(err)
		}
		records = append(records, parseRow(row, columns, numeric, nameColumn))
	}
	return records, nil
}

func parseRow(row []string, columns map[string]int, numeric []string, nameColumn string) ReferenceRecord {
	rec := ReferenceRecord{
		Name:        cell(row, columns, nameColumn),
		Disposition: cell(row, columns, csvDispositionColumn),
		Fields:      make(map[string]float64, len(numeric)),
	}
	for _, name := range numeric {
		raw := cell(row, columns, name)
		if raw == "" {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		rec.Fields[name] = val
	}
	return rec
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
