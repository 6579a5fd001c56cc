package services

import (
	"strconv"
	"strings"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// LatestByArea keeps, for each (indicator, area, disaggregation) group,
// only the row with the maximum period. Ties at the latest period keep
// the last-seen row, so callers relying on revision order must pre-sort
// the input. The input table is never mutated.
func (t *Translator) LatestByArea(table *domain.Table) *domain.Table {
	latest := make(map[string]int)
	order := make([]string, 0)

	for i, row := range table.Rows {
		key := groupKey(row, table.DimensionColumns)
		prev, ok := latest[key]
		if !ok {
			latest[key] = i
			order = append(order, key)
			continue
		}
		// >= keeps the last-seen row on period ties.
		if comparePeriods(row.Period, table.Rows[prev].Period) >= 0 {
			latest[key] = i
		}
	}

	reduced := &domain.Table{
		DimensionColumns: append([]string(nil), table.DimensionColumns...),
		Rows:             make([]domain.FlatRow, 0, len(order)),
	}
	for _, key := range order {
		reduced.Rows = append(reduced.Rows, table.Rows[latest[key]])
	}
	logger.Debug("Reduced %d row(s) to %d latest observation(s)", len(table.Rows), len(reduced.Rows))
	return reduced
}

// groupKey identifies a (indicator, area, disaggregation) group. The
// separator cannot occur in SDMX codes.
func groupKey(row domain.FlatRow, columns []string) string {
	parts := make([]string, 0, len(columns)+2)
	parts = append(parts, row.Indicator, row.Area)
	for _, col := range columns {
		parts = append(parts, row.Dimension(col))
	}
	return strings.Join(parts, "\x1f")
}

// comparePeriods orders time periods numerically where both parse as
// years, lexically otherwise (which still orders ISO-style periods like
// "2015-S1" correctly).
func comparePeriods(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
