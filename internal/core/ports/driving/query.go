package driving

import (
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

// QueryService maps a resolved indicator set and filter arguments into
// the provider's wire parameters.
type QueryService interface {
	// Build produces the parameter set for the given indicators.
	Build(indicators []domain.IndicatorRecord, opts domain.QueryOptions) (domain.ParamSet, error)
}
