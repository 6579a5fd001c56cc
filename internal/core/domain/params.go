package domain

import "net/url"

// Wire parameter names and values understood by the provider.
const (
	// FormatSDMXJSON requests the JSON rendering of a dataset.
	FormatSDMXJSON = "sdmx-json"

	// AllDimensions asks for full-resolution observation tuples. The
	// provider's default partial layout omits dimension codes the parser
	// needs to tell disaggregated series apart, so every data query sets
	// this mode.
	AllDimensions = "AllDimensions"

	// DetailSeriesKeysOnly requests series keys without data, used for
	// dimension discovery.
	DetailSeriesKeysOnly = "serieskeysonly"
)

// ParamSet is the complete set of wire parameters for one provider query.
// It is produced by the query builder and consumed by the transport; the
// transport adds authentication on top.
type ParamSet struct {
	// FilterPath is the dotted dimension filter appended to the dataflow
	// URL, e.g. "ROFST+OFST.PT.L1._T....BD". Never includes a time-period
	// segment.
	FilterPath string

	// StartPeriod and EndPeriod bound the reporting period. The provider's
	// direct time-period filter is unreliable, so period filtering always
	// uses these bounds and the precise period is recovered from each
	// observation in the response.
	StartPeriod string
	EndPeriod   string

	// Detail, when set, limits the response detail (e.g. series keys only).
	Detail string
}

// Query renders the parameter set as URL query values. The full-resolution
// mode is always requested; omitting it is a known correctness hazard.
func (p ParamSet) Query() url.Values {
	q := url.Values{}
	q.Set("format", FormatSDMXJSON)
	q.Set("dimensionAtObservation", AllDimensions)
	if p.StartPeriod != "" {
		q.Set("startPeriod", p.StartPeriod)
	}
	if p.EndPeriod != "" {
		q.Set("endPeriod", p.EndPeriod)
	}
	if p.Detail != "" {
		q.Set("detail", p.Detail)
	}
	return q
}
