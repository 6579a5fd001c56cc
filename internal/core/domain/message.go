package domain

// Message is a raw SDMX-JSON response payload as returned by the provider.
// Observations are flat, dimension-tagged tuples; the structure branch maps
// the numeric codes in each observation key back to dimension values.
type Message struct {
	DataSets  []DataSet `json:"dataSets"`
	Structure Structure `json:"structure"`
}

// DataSet holds the observations of one dataset.
//
// Each observation key is a colon-separated list of indexes into the
// structure's observation dimensions, e.g. "0:0:2:0:1". Each value is a
// list whose first element is the observation value (number or string) and
// whose remaining elements index the observation attributes.
type DataSet struct {
	Observations map[string][]any `json:"observations"`
}

// Structure describes the dimensions and attributes of the observations.
type Structure struct {
	Name       string        `json:"name"`
	Dimensions StructureAxis `json:"dimensions"`
	Attributes StructureAxis `json:"attributes"`
}

// StructureAxis lists the concepts attached at observation level.
type StructureAxis struct {
	Observation []Concept `json:"observation"`
}

// Concept is one dimension or attribute with its enumerated values.
type Concept struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Values      []ConceptValue `json:"values"`
}

// ConceptValue is one code of a dimension or attribute.
type ConceptValue struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
