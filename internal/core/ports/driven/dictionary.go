package driven

import (
	"context"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

// DictionarySource loads indicator dictionary records from an external
// tabular source, e.g. the published dictionary CSV. The schema must be
// stable across reloads of the same source.
type DictionarySource interface {
	// Load reads all dictionary records in source order.
	Load(ctx context.Context) ([]domain.IndicatorRecord, error)
}

// DictionaryStore persists indicator dictionary records locally so the
// catalog can be rebuilt without re-reading the published dictionary.
type DictionaryStore interface {
	DictionarySource

	// Save replaces the stored dictionary with the given records.
	Save(ctx context.Context, records []domain.IndicatorRecord) error
}
