package domain

// Nested is the indicator → area → period → value arrangement of one
// response. It is built once per response and read-only thereafter.
type Nested struct {
	// Data maps indicator identifier → area code → time period → value.
	Data map[string]map[string]map[string]Value

	// Metadata holds descriptive attributes for the indicators and areas
	// in Data. Nil when metadata was suppressed.
	Metadata *ResponseMetadata
}

// ResponseMetadata carries the descriptive branches of an arranged response.
type ResponseMetadata struct {
	// Indicators maps indicator identifier → dimension name → value name,
	// one entry per indicator present in the data.
	Indicators map[string]map[string]string

	// Labels maps indicator identifier → catalog display label, for
	// indicators the catalog knows about.
	Labels map[string]string

	// Areas maps area code → descriptive area name.
	Areas map[string]string

	// Attributes maps attribute name → its prevailing value name across
	// the response. Observations deviating from the prevailing value are
	// recorded in Exceptions.
	Attributes map[string]string

	// AttributeDescriptions maps attribute name → description text.
	AttributeDescriptions map[string]string

	// Exceptions maps indicator → area → period → attribute name → value
	// name for observations whose attributes deviate from the prevailing
	// value, e.g. a differing unit or a not-applicable marker.
	Exceptions map[string]map[string]map[string]map[string]string
}

// MetadataFilter selects which metadata branches Arrange attaches.
// A nil *MetadataFilter suppresses the metadata branch entirely for a
// lighter-weight result.
type MetadataFilter struct {
	// Dimensions attaches per-indicator dimension metadata and area names.
	Dimensions bool

	// Attributes attaches the prevailing attribute values.
	Attributes bool

	// Descriptions attaches attribute description texts.
	// Only honoured together with Attributes.
	Descriptions bool

	// Exceptions attaches per-observation attribute deviations.
	Exceptions bool
}

// AllMetadata selects every metadata branch.
func AllMetadata() *MetadataFilter {
	return &MetadataFilter{
		Dimensions:   true,
		Attributes:   true,
		Descriptions: true,
		Exceptions:   true,
	}
}

// Indicators returns the indicator identifiers present in the data,
// in unspecified order.
func (n *Nested) Indicators() []string {
	ids := make([]string, 0, len(n.Data))
	for id := range n.Data {
		ids = append(ids, id)
	}
	return ids
}

// Value looks up a single observation value.
func (n *Nested) Value(indicator, area, period string) (Value, bool) {
	areas, ok := n.Data[indicator]
	if !ok {
		return Value{}, false
	}
	periods, ok := areas[area]
	if !ok {
		return Value{}, false
	}
	v, ok := periods[period]
	return v, ok
}
