// Package csvfile loads the indicator dictionary from a CSV file.
//
// The expected schema is one row per indicator with the columns
// id, key, short_key, label, family and free_dimensions (the last a
// "|"-separated list). Header names are matched case-insensitively and
// the column order is free, but the schema must stay stable across
// reloads of the same file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driven"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DictionarySource = (*Loader)(nil)

// Column names of the dictionary schema.
const (
	colID       = "id"
	colKey      = "key"
	colShortKey = "short_key"
	colLabel    = "label"
	colFamily   = "family"
	colFreeDims = "free_dimensions"
)

// FreeDimensionSeparator separates dimension names within the
// free_dimensions column.
const FreeDimensionSeparator = "|"

// Loader reads indicator dictionary records from a CSV file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given dictionary file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the dictionary file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads all dictionary records in file order.
func (l *Loader) Load(ctx context.Context) ([]domain.IndicatorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", l.path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("dictionary %s is empty: %w", l.path, domain.ErrInvalidInput)
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", l.path, err)
	}

	records := make([]domain.IndicatorRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		rec := domain.IndicatorRecord{
			ID:       field(colID),
			FullKey:  field(colKey),
			ShortKey: field(colShortKey),
			Label:    field(colLabel),
			FamilyID: field(colFamily),
		}
		if dims := field(colFreeDims); dims != "" {
			for _, d := range strings.Split(dims, FreeDimensionSeparator) {
				if d = strings.TrimSpace(d); d != "" {
					rec.FreeDimensions = append(rec.FreeDimensions, strings.ToUpper(d))
				}
			}
		}
		if rec.ID == "" || rec.FullKey == "" || rec.ShortKey == "" {
			return nil, fmt.Errorf("dictionary %s row %d: missing identifier: %w",
				l.path, i+2, domain.ErrInvalidInput)
		}
		records = append(records, rec)
	}

	logger.Debug("Loaded %d dictionary record(s) from %s", len(records), l.path)
	return records, nil
}

// headerIndex maps lower-cased column names to their positions.
// The three identifier columns are required.
func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colID, colKey, colShortKey} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", required, domain.ErrInvalidInput)
		}
	}
	return columns, nil
}
