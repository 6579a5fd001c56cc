package domain

// TotalCode is the provider's sentinel for an undisaggregated dimension.
// Flat rows fill dimensions absent from an observation with this code so
// that indicators with different disaggregation sets share one table.
const TotalCode = "_T"

// NotApplicableCode marks a dimension that does not apply to a series.
const NotApplicableCode = "_Z"

// FlatRow is one row of the tabular projection: one observation with its
// disaggregation codes restored as columns.
type FlatRow struct {
	// Indicator is the full indicator identifier the observation belongs to.
	Indicator string

	// Area is the area code, Period the time period.
	Area   string
	Period string

	// Dimensions holds the observation's disaggregation codes by dimension
	// name. Dimensions at their total or not-applicable sentinel are not
	// stored; Dimension fills them on access.
	Dimensions map[string]string

	// Value is the observation value.
	Value Value
}

// Dimension returns the row's code for the given dimension, or TotalCode
// when the observation did not carry that dimension.
func (r FlatRow) Dimension(name string) string {
	if code, ok := r.Dimensions[name]; ok {
		return code
	}
	return TotalCode
}

// Table is the flat, row-oriented projection of a response.
type Table struct {
	// DimensionColumns is the sorted union of disaggregation dimension
	// names across all rows.
	DimensionColumns []string

	// Rows holds one row per observation.
	Rows []FlatRow
}

// Nest rebuilds the indicator → area → period → value mapping from the
// table. Metadata is not reconstructed.
func (t *Table) Nest() map[string]map[string]map[string]Value {
	nested := make(map[string]map[string]map[string]Value)
	for _, row := range t.Rows {
		areas, ok := nested[row.Indicator]
		if !ok {
			areas = make(map[string]map[string]Value)
			nested[row.Indicator] = areas
		}
		periods, ok := areas[row.Area]
		if !ok {
			periods = make(map[string]Value)
			areas[row.Area] = periods
		}
		periods[row.Period] = row.Value
	}
	return nested
}
