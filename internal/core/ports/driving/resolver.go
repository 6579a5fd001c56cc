package driving

import (
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

// ResolverService resolves user-supplied indicator references.
type ResolverService interface {
	// LookupExact resolves a single identifier token by numeric ID,
	// full key or short key, in that order.
	LookupExact(token string) (domain.IndicatorRecord, error)

	// FuzzyLookup resolves a free-text query to an ordered indicator set.
	// Identical inputs always yield identically ordered output.
	FuzzyLookup(query string, opts domain.ResolveOptions) (domain.ResolutionResult, error)
}
