package domain

import "strings"

// IndicatorRecord is one entry of the indicator dictionary.
// Records are built once at catalog load and never mutated.
type IndicatorRecord struct {
	// ID is the numeric-style indicator identifier, e.g. "ROFST.1.cp".
	ID string

	// FullKey is the complete dimension-tuple key that uniquely identifies
	// the series template on the wire, e.g. "ROFST.PT.L1._T._T...".
	// This is the only identifier form the provider understands.
	FullKey string

	// ShortKey is the human-friendly alias, e.g. "rofst-1".
	ShortKey string

	// Label is the display text for the indicator.
	Label string

	// FamilyID groups the indicator with its parent/child variants,
	// e.g. the sex-disaggregated children of a headline indicator.
	FamilyID string

	// FreeDimensions lists the dimension names this indicator can be
	// disaggregated by, e.g. SEX or WEALTH_QUINTILE.
	FreeDimensions []string
}

// HasDimension reports whether the record can be disaggregated by the
// given dimension name. Comparison is case-insensitive.
func (r IndicatorRecord) HasDimension(dim string) bool {
	for _, d := range r.FreeDimensions {
		if strings.EqualFold(d, dim) {
			return true
		}
	}
	return false
}

// Disaggregable reports whether the record carries any free dimension.
func (r IndicatorRecord) Disaggregable() bool {
	return len(r.FreeDimensions) > 0
}

// Scope controls how far a resolved indicator is expanded along its family.
type Scope int

const (
	// ScopeSelf returns only the matched record(s).
	ScopeSelf Scope = iota

	// ScopeSub adds the matched records' family members that carry a
	// disaggregation dimension.
	ScopeSub

	// ScopeAll adds every member of each matched record's family,
	// including cohort and grade-level variants.
	ScopeAll
)

// String returns the lower-case name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeSelf:
		return "self"
	case ScopeSub:
		return "sub"
	case ScopeAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseScope converts a scope name into a Scope.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "self":
		return ScopeSelf, nil
	case "sub":
		return ScopeSub, nil
	case "all":
		return ScopeAll, nil
	default:
		return ScopeSelf, ErrInvalidInput
	}
}

// ResolutionResult is the ordered, duplicate-free set of indicator records
// produced by a resolution, tagged with the scope that produced it and the
// disaggregation dimension it was filtered by, if any.
type ResolutionResult struct {
	// Records are the resolved indicators, ordered by descending similarity
	// with catalog insertion order breaking ties.
	Records []IndicatorRecord

	// Scope is the family expansion the result was produced with.
	Scope Scope

	// Dimension is the free-dimension filter applied, empty if none.
	Dimension string
}

// Empty reports whether the resolution matched no records.
func (r ResolutionResult) Empty() bool {
	return len(r.Records) == 0
}

// FullKeys returns the wire identifiers of all resolved records, in order.
func (r ResolutionResult) FullKeys() []string {
	keys := make([]string, len(r.Records))
	for i, rec := range r.Records {
		keys[i] = rec.FullKey
	}
	return keys
}
