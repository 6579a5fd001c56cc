package driving

import (
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

// TranslateService reassembles a raw provider payload into query-friendly
// structures.
type TranslateService interface {
	// Arrange nests the flat observation list into indicator → area →
	// period → value, attaching the metadata branches the filter selects.
	// A nil filter suppresses metadata entirely.
	Arrange(msg *domain.Message, meta *domain.MetadataFilter) (*domain.Nested, error)

	// Table projects the flat observation list into row-oriented form.
	Table(msg *domain.Message) (*domain.Table, error)

	// LatestByArea keeps, for each (indicator, area, disaggregation)
	// group, only the row with the latest period. The input is not
	// mutated.
	LatestByArea(table *domain.Table) *domain.Table
}
