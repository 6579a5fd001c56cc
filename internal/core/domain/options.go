package domain

// Resolver tuning defaults. Scores are on a 0–1 scale.
const (
	// DefaultTolerance is the width of the best-scoring cluster: every
	// record within this distance of the top score is included, so a
	// headline indicator and a near-tied variant are returned together.
	DefaultTolerance = 0.05

	// DefaultMinScore is the similarity floor below which a query
	// resolves to nothing.
	DefaultMinScore = 0.55
)

// ResolveOptions configures a fuzzy indicator resolution.
type ResolveOptions struct {
	// Scope controls family expansion of the matched record(s).
	Scope Scope

	// By restricts the result to records disaggregable by this dimension.
	// Empty means no restriction.
	By string

	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float64

	// MinScore overrides DefaultMinScore when positive.
	MinScore float64
}

// QueryOptions configures the wire parameters built for a resolved
// indicator set.
type QueryOptions struct {
	// Areas lists area codes to filter by. Codes pass through as given;
	// free-text country names must be resolved before reaching the core.
	Areas []string

	// Start and End bound the reporting period, e.g. "2012" and "2016".
	Start string
	End   string

	// Dimensions adds further dimension constraints, keyed by dimension
	// name with one or more permitted codes each.
	Dimensions map[string][]string
}
