package services

import (
	"fmt"
	"strings"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driving"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// Ensure QueryBuilder implements the interface.
var _ driving.QueryService = (*QueryBuilder)(nil)

// QueryBuilder maps resolved indicator sets and filter arguments into the
// provider's wire parameters for one dataflow layout.
type QueryBuilder struct {
	flow domain.Dataflow
}

// NewQueryBuilder creates a builder for the given dataflow.
func NewQueryBuilder(flow domain.Dataflow) *QueryBuilder {
	return &QueryBuilder{flow: flow}
}

// NewQueryBuilderFromDiscovery creates a builder from a dimension list
// discovered via the provider's metadata. The provider reports the
// time-period pseudo-dimension without marking it non-queryable; the
// dataflow layout prunes it before any filter path is built.
func NewQueryBuilderFromDiscovery(dimensions []string) *QueryBuilder {
	return NewQueryBuilder(domain.NewDataflow(dimensions))
}

// Build produces the wire parameters for the given indicators.
//
// Indicators are always normalised to their full dimension keys: numeric
// IDs and short keys are local conveniences the wire protocol does not
// understand. Multiple indicators are combined into one multi-valued
// filter path, which may over-query; the parser's arrangement keyed by
// full indicator identity keeps the extra series separable.
func (b *QueryBuilder) Build(indicators []domain.IndicatorRecord, opts domain.QueryOptions) (domain.ParamSet, error) {
	logger.Section("Query Construction")

	if len(indicators) == 0 {
		return domain.ParamSet{}, fmt.Errorf("no indicators to query: %w", domain.ErrInvalidInput)
	}

	specs := make([]map[string]string, 0, len(indicators))
	for _, rec := range indicators {
		spec, err := b.flow.KeyToSpec(rec.FullKey)
		if err != nil {
			return domain.ParamSet{}, fmt.Errorf("indicator %s: %w", rec.ID, err)
		}
		specs = append(specs, spec)
	}
	combined := domain.CombineSpecs(specs...)

	if len(opts.Areas) > 0 {
		combined[domain.DimArea] = append([]string(nil), opts.Areas...)
	}

	for dim, codes := range opts.Dimensions {
		name := strings.ToUpper(dim)
		if name == domain.DimPeriod {
			// The direct time-period filter is unreliable; period bounds
			// go through startPeriod/endPeriod only.
			return domain.ParamSet{}, fmt.Errorf("%s cannot be filtered directly, use start/end bounds: %w",
				domain.DimPeriod, domain.ErrInvalidInput)
		}
		if !b.flow.IsDimension(name) {
			return domain.ParamSet{}, fmt.Errorf("unknown dimension %q: %w", dim, domain.ErrInvalidInput)
		}
		combined[name] = append(combined[name], codes...)
	}

	params := domain.ParamSet{
		FilterPath:  b.flow.SpecToPath(combined),
		StartPeriod: opts.Start,
		EndPeriod:   opts.End,
	}
	logger.Debug("Filter path: %s", params.FilterPath)
	logger.Debug("Period bounds: [%s, %s]", params.StartPeriod, params.EndPeriod)
	return params, nil
}

// Dataflow returns the dataflow layout the builder targets.
func (b *QueryBuilder) Dataflow() domain.Dataflow {
	return b.flow
}
