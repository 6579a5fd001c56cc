package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driving"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// Ensure Translator implements the interface.
var _ driving.TranslateService = (*Translator)(nil)

// Translator reassembles raw provider payloads into nested and tabular
// structures. The optional catalog enriches indicator metadata with
// display labels; a nil catalog disables that enrichment only.
type Translator struct {
	catalog *domain.Catalog
}

// NewTranslator creates a translator. catalog may be nil.
func NewTranslator(catalog *domain.Catalog) *Translator {
	return &Translator{catalog: catalog}
}

// observation is one decoded flat tuple.
type observation struct {
	indicator string
	area      string
	period    string
	value     domain.Value

	// codes maps indicator dimension ID → value code.
	codes map[string]string

	// names maps dimension display name → value display name, for the
	// indicator metadata branch.
	names map[string]string

	// attrs holds the attribute value index per attribute concept,
	// -1 where the observation carries none.
	attrs []int
}

// Arrange nests the flat observation list into indicator → area → period
// → value. Duplicate (indicator, area, period) tuples are a data
// integrity violation and fail the whole call with
// ErrConflictingObservation; the provider's data model guarantees
// uniqueness, so a collision signals a parsing defect or a dimension the
// caller must disaggregate further.
func (t *Translator) Arrange(msg *domain.Message, meta *domain.MetadataFilter) (*domain.Nested, error) {
	logger.Section("Response Arrangement")

	observations, attributes, areaNames, err := t.decode(msg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Decoded %d observation(s)", len(observations))

	nested := &domain.Nested{Data: make(map[string]map[string]map[string]domain.Value)}
	indicatorNames := make(map[string]map[string]string)

	for _, obs := range observations {
		areas, ok := nested.Data[obs.indicator]
		if !ok {
			areas = make(map[string]map[string]domain.Value)
			nested.Data[obs.indicator] = areas
		}
		periods, ok := areas[obs.area]
		if !ok {
			periods = make(map[string]domain.Value)
			areas[obs.area] = periods
		}
		if existing, dup := periods[obs.period]; dup {
			return nil, fmt.Errorf("%s/%s/%s already has value %s: %w",
				obs.indicator, obs.area, obs.period, existing, domain.ErrConflictingObservation)
		}
		periods[obs.period] = obs.value
		indicatorNames[obs.indicator] = obs.names
	}

	if meta != nil {
		nested.Metadata = t.buildMetadata(meta, observations, attributes, areaNames, indicatorNames)
	}
	logger.Info("Arranged %d indicator(s)", len(nested.Data))
	return nested, nil
}

// Table projects the flat observation list into row-oriented form. Each
// row restores the disaggregation codes of its originating observation;
// the column set is the union across all rows and absent dimensions read
// as the total sentinel.
func (t *Translator) Table(msg *domain.Message) (*domain.Table, error) {
	observations, _, _, err := t.decode(msg)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]bool)
	rows := make([]domain.FlatRow, 0, len(observations))
	for _, obs := range observations {
		dims := make(map[string]string)
		for dim, code := range obs.codes {
			// Total and not-applicable codes are the undisaggregated
			// defaults; only real disaggregation codes become columns.
			if code == "" || code == domain.TotalCode || code == domain.NotApplicableCode {
				continue
			}
			dims[dim] = code
			columns[dim] = true
		}
		rows = append(rows, domain.FlatRow{
			Indicator:  obs.indicator,
			Area:       obs.area,
			Period:     obs.period,
			Dimensions: dims,
			Value:      obs.value,
		})
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	return &domain.Table{DimensionColumns: names, Rows: rows}, nil
}

// decode validates the payload and expands every observation key into a
// decoded tuple. Observations are returned in deterministic order (sorted
// componentwise by key) regardless of map iteration order.
func (t *Translator) decode(msg *domain.Message) ([]observation, []domain.Concept, map[string]string, error) {
	if msg == nil || len(msg.DataSets) == 0 {
		return nil, nil, nil, fmt.Errorf("no datasets: %w", domain.ErrMalformedResponse)
	}
	raw := msg.DataSets[0].Observations
	if len(raw) == 0 {
		return nil, nil, nil, fmt.Errorf("no observations: %w", domain.ErrMalformedResponse)
	}
	dimensions := msg.Structure.Dimensions.Observation
	if len(dimensions) == 0 {
		return nil, nil, nil, fmt.Errorf("no observation dimensions: %w", domain.ErrMalformedResponse)
	}

	areaPos, periodPos := -1, -1
	for i, dim := range dimensions {
		switch dim.ID {
		case domain.DimArea:
			areaPos = i
		case domain.DimPeriod:
			periodPos = i
		}
	}
	if areaPos < 0 || periodPos < 0 {
		return nil, nil, nil, fmt.Errorf("structure lacks %s or %s: %w",
			domain.DimArea, domain.DimPeriod, domain.ErrMalformedResponse)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sortObservationKeys(keys)

	attributes := msg.Structure.Attributes.Observation
	areaNames := make(map[string]string)
	observations := make([]observation, 0, len(keys))

	for _, key := range keys {
		parts := strings.Split(key, ":")
		if len(parts) != len(dimensions) {
			return nil, nil, nil, fmt.Errorf("observation key %q has %d parts, structure has %d dimensions: %w",
				key, len(parts), len(dimensions), domain.ErrMalformedResponse)
		}

		obs := observation{
			codes: make(map[string]string, len(dimensions)-2),
			names: make(map[string]string, len(dimensions)-2),
		}
		indicatorCodes := make([]string, 0, len(dimensions)-2)
		for i, part := range parts {
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(dimensions[i].Values) {
				return nil, nil, nil, fmt.Errorf("observation key %q: no value %q in dimension %s: %w",
					key, part, dimensions[i].ID, domain.ErrMalformedResponse)
			}
			value := dimensions[i].Values[index]
			switch i {
			case areaPos:
				obs.area = value.ID
				areaNames[value.ID] = value.Name
			case periodPos:
				obs.period = value.ID
			default:
				indicatorCodes = append(indicatorCodes, value.ID)
				obs.codes[dimensions[i].ID] = value.ID
				obs.names[dimensions[i].Name] = value.Name
			}
		}
		obs.indicator = strings.Join(indicatorCodes, ".")

		tuple := raw[key]
		if len(tuple) == 0 {
			return nil, nil, nil, fmt.Errorf("observation %q has no value: %w", key, domain.ErrMalformedResponse)
		}
		switch v := tuple[0].(type) {
		case float64:
			obs.value = domain.NumberValue(v)
		case string:
			obs.value = domain.TextValue(v)
		case nil:
			obs.value = domain.TextValue("")
		default:
			return nil, nil, nil, fmt.Errorf("observation %q has value of unexpected type %T: %w",
				key, tuple[0], domain.ErrMalformedResponse)
		}

		obs.attrs = make([]int, len(attributes))
		for i := range attributes {
			obs.attrs[i] = -1
			if i+1 >= len(tuple) {
				continue
			}
			f, ok := tuple[i+1].(float64)
			if !ok {
				continue
			}
			index := int(f)
			if index < 0 || index >= len(attributes[i].Values) {
				return nil, nil, nil, fmt.Errorf("observation %q: no value %d in attribute %s: %w",
					key, index, attributes[i].ID, domain.ErrMalformedResponse)
			}
			obs.attrs[i] = index
		}

		observations = append(observations, obs)
	}

	return observations, attributes, areaNames, nil
}

// buildMetadata assembles the metadata branches the filter selects.
func (t *Translator) buildMetadata(
	meta *domain.MetadataFilter,
	observations []observation,
	attributes []domain.Concept,
	areaNames map[string]string,
	indicatorNames map[string]map[string]string,
) *domain.ResponseMetadata {
	md := &domain.ResponseMetadata{}

	if meta.Dimensions {
		md.Indicators = indicatorNames
		md.Areas = areaNames
		if t.catalog != nil {
			md.Labels = make(map[string]string)
			for id := range indicatorNames {
				if rec, err := t.catalog.LookupExact(id); err == nil {
					md.Labels[id] = rec.Label
				}
			}
		}
	}

	if !meta.Attributes && !meta.Exceptions {
		return md
	}

	prevailing := prevailingAttributes(observations, attributes)

	if meta.Attributes {
		md.Attributes = make(map[string]string)
		if meta.Descriptions {
			md.AttributeDescriptions = make(map[string]string)
		}
		for i, attr := range attributes {
			if prevailing[i] < 0 {
				continue
			}
			value := attr.Values[prevailing[i]]
			md.Attributes[attr.Name] = value.Name
			if meta.Descriptions {
				md.AttributeDescriptions[attr.Name] = attr.Description
				if value.Description != "" {
					md.AttributeDescriptions[attr.Name+": "+value.Name] = value.Description
				}
			}
		}
	}

	if meta.Exceptions {
		md.Exceptions = make(map[string]map[string]map[string]map[string]string)
		for _, obs := range observations {
			for i, attr := range attributes {
				idx := obs.attrs[i]
				if idx < 0 || idx == prevailing[i] {
					continue
				}
				byArea, ok := md.Exceptions[obs.indicator]
				if !ok {
					byArea = make(map[string]map[string]map[string]string)
					md.Exceptions[obs.indicator] = byArea
				}
				byPeriod, ok := byArea[obs.area]
				if !ok {
					byPeriod = make(map[string]map[string]string)
					byArea[obs.area] = byPeriod
				}
				deviation, ok := byPeriod[obs.period]
				if !ok {
					deviation = make(map[string]string)
					byPeriod[obs.period] = deviation
				}
				deviation[attr.Name] = attr.Values[idx].Name
			}
		}
	}

	return md
}

// prevailingAttributes finds, per attribute, the most common value index
// across all observations. Ties resolve to the lowest index so the result
// is deterministic. Attributes never observed yield -1.
func prevailingAttributes(observations []observation, attributes []domain.Concept) []int {
	prevailing := make([]int, len(attributes))
	for i := range attributes {
		counts := make(map[int]int)
		for _, obs := range observations {
			if obs.attrs[i] >= 0 {
				counts[obs.attrs[i]]++
			}
		}
		best, bestCount := -1, 0
		for idx, count := range counts {
			if count > bestCount || (count == bestCount && best >= 0 && idx < best) {
				best, bestCount = idx, count
			}
		}
		prevailing[i] = best
	}
	return prevailing
}

// sortObservationKeys orders colon-separated numeric keys componentwise,
// so "2:10" sorts after "2:9".
func sortObservationKeys(keys []string) {
	sort.Slice(keys, func(a, b int) bool {
		as, bs := strings.Split(keys[a], ":"), strings.Split(keys[b], ":")
		for i := 0; i < len(as) && i < len(bs); i++ {
			ai, aerr := strconv.Atoi(as[i])
			bi, berr := strconv.Atoi(bs[i])
			if aerr != nil || berr != nil {
				if as[i] != bs[i] {
					return as[i] < bs[i]
				}
				continue
			}
			if ai != bi {
				return ai < bi
			}
		}
		return len(as) < len(bs)
	})
}
