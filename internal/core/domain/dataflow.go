package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Dimension identifiers shared by all dataflows of the provider.
const (
	// DimArea is the country/area dimension.
	DimArea = "REF_AREA"

	// DimPeriod is the time-period pseudo-dimension. The provider lists it
	// alongside the real dimensions without marking it as non-queryable,
	// but it must never be sent in a filter path; period filtering uses
	// startPeriod/endPeriod bounds instead.
	DimPeriod = "TIME_PERIOD"
)

// EducationDimensions is the fixed dimension order of the provider's
// education statistics dataflow (EDU_NON_FINANCE v3).
var EducationDimensions = []string{
	"STAT_UNIT",
	"UNIT_MEASURE",
	"EDU_LEVEL",
	"EDU_CAT",
	"SEX",
	"AGE",
	"GRADE",
	"SECTOR_EDU",
	"EDU_ATTAIN",
	"WEALTH_QUINTILE",
	"LOCATION",
	"EDU_TYPE",
	"EDU_FIELD",
	"SUBJECT",
	"INFRASTR",
	"SE_BKGRD",
	"TEACH_EXPERIENCE",
	"CONTRACT_TYPE",
	"COUNTRY_ORIGIN",
	"REGION_DEST",
	"IMM_STATUS",
	DimArea,
	DimPeriod,
}

// Dataflow describes the fixed dimension layout of one provider dataflow.
// The area and time-period dimensions filter queries but are not part of
// an indicator's identity.
type Dataflow struct {
	dimensions []string
}

// NewDataflow builds a dataflow from an ordered dimension list, as returned
// by the provider's metadata endpoint.
func NewDataflow(dimensions []string) Dataflow {
	dims := make([]string, len(dimensions))
	for i, d := range dimensions {
		dims[i] = strings.ToUpper(d)
	}
	return Dataflow{dimensions: dims}
}

// DefaultDataflow returns the education statistics dataflow layout.
func DefaultDataflow() Dataflow {
	return NewDataflow(EducationDimensions)
}

// Dimensions returns the full ordered dimension list, including the area
// and time-period dimensions.
func (f Dataflow) Dimensions() []string {
	return f.dimensions
}

// IndicatorDimensions returns the dimensions that make up an indicator's
// identity, i.e. everything except area and time period.
func (f Dataflow) IndicatorDimensions() []string {
	dims := make([]string, 0, len(f.dimensions))
	for _, d := range f.dimensions {
		if d != DimArea && d != DimPeriod {
			dims = append(dims, d)
		}
	}
	return dims
}

// QueryableDimensions returns the dimensions that may appear in a filter
// path. The time-period pseudo-dimension is pruned even though the
// provider's metadata lists it as if it were queryable.
func (f Dataflow) QueryableDimensions() []string {
	dims := make([]string, 0, len(f.dimensions))
	for _, d := range f.dimensions {
		if d != DimPeriod {
			dims = append(dims, d)
		}
	}
	return dims
}

// IsDimension reports whether name is a dimension of the dataflow.
// Matching is case-insensitive.
func (f Dataflow) IsDimension(name string) bool {
	upper := strings.ToUpper(name)
	for _, d := range f.dimensions {
		if d == upper {
			return true
		}
	}
	return false
}

// KeyToSpec expands a full dimension key into a dimension → code mapping.
// The key's arity must match the dataflow's indicator dimensions; shorter
// keys fail with ErrInvalidInput since a partial key is ambiguous.
func (f Dataflow) KeyToSpec(key string) (map[string]string, error) {
	parts := strings.Split(key, ".")
	dims := f.IndicatorDimensions()
	if len(parts) != len(dims) {
		return nil, fmt.Errorf("key %q has %d segments, dataflow has %d indicator dimensions: %w",
			key, len(parts), len(dims), ErrInvalidInput)
	}
	spec := make(map[string]string, len(dims))
	for i, d := range dims {
		spec[d] = parts[i]
	}
	return spec, nil
}

// SpecToPath renders a dimension → codes mapping as an SDMX filter path.
// Every queryable dimension contributes one dot-separated segment, in
// dataflow order; multiple codes are joined with "+", unset dimensions
// stay empty (match-all). The time-period dimension is never emitted.
func (f Dataflow) SpecToPath(spec map[string][]string) string {
	segments := make([]string, 0, len(f.dimensions))
	for _, d := range f.QueryableDimensions() {
		codes := spec[d]
		sorted := make([]string, len(codes))
		copy(sorted, codes)
		sort.Strings(sorted)
		segments = append(segments, strings.Join(sorted, "+"))
	}
	return strings.Join(segments, ".")
}

// CombineSpecs merges several single-valued indicator specs into one
// multi-valued spec. Combining unrelated indicators can over-query, i.e.
// match series none of the inputs named; callers filter on arrangement.
func CombineSpecs(specs ...map[string]string) map[string][]string {
	combined := make(map[string][]string)
	for _, spec := range specs {
		for dim, code := range spec {
			if code == "" {
				continue
			}
			if !containsString(combined[dim], code) {
				combined[dim] = append(combined[dim], code)
			}
		}
	}
	return combined
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
