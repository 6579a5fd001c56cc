package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataflow_Layout(t *testing.T) {
	flow := DefaultDataflow()

	assert.Len(t, flow.Dimensions(), 23)
	assert.Len(t, flow.IndicatorDimensions(), 21)
	assert.NotContains(t, flow.IndicatorDimensions(), DimArea)
	assert.NotContains(t, flow.IndicatorDimensions(), DimPeriod)

	// The area dimension is queryable, the time period never is.
	assert.Contains(t, flow.QueryableDimensions(), DimArea)
	assert.NotContains(t, flow.QueryableDimensions(), DimPeriod)
}

func TestDataflow_IsDimension(t *testing.T) {
	flow := NewDataflow([]string{"STAT_UNIT", "SEX", DimArea, DimPeriod})

	assert.True(t, flow.IsDimension("sex"))
	assert.True(t, flow.IsDimension("STAT_UNIT"))
	assert.False(t, flow.IsDimension("FLAVOUR"))
}

func TestDataflow_KeyToSpec(t *testing.T) {
	flow := NewDataflow([]string{"STAT_UNIT", "UNIT_MEASURE", "SEX", DimArea, DimPeriod})

	spec, err := flow.KeyToSpec("ROFST.PT._T")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"STAT_UNIT":    "ROFST",
		"UNIT_MEASURE": "PT",
		"SEX":          "_T",
	}, spec)
}

func TestDataflow_KeyToSpec_ArityMismatch(t *testing.T) {
	flow := NewDataflow([]string{"STAT_UNIT", "UNIT_MEASURE", "SEX", DimArea, DimPeriod})

	_, err := flow.KeyToSpec("ROFST.PT")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDataflow_SpecToPath(t *testing.T) {
	flow := NewDataflow([]string{"STAT_UNIT", "UNIT_MEASURE", "SEX", DimArea, DimPeriod})

	path := flow.SpecToPath(map[string][]string{
		"STAT_UNIT": {"ROFST", "OFST"},
		"SEX":       {"_T"},
		DimArea:     {"BD"},
	})

	// Codes sort within a segment, unset dimensions stay empty, and the
	// time period contributes no segment at all.
	assert.Equal(t, "OFST+ROFST.._T.BD", path)
	assert.Equal(t, len(flow.QueryableDimensions()), strings.Count(path, ".")+1)
}

func TestCombineSpecs_MergesAndDeduplicates(t *testing.T) {
	combined := CombineSpecs(
		map[string]string{"STAT_UNIT": "ROFST", "SEX": "_T"},
		map[string]string{"STAT_UNIT": "OFST", "SEX": "_T"},
		map[string]string{"STAT_UNIT": "ROFST", "SEX": ""},
	)

	assert.Equal(t, []string{"ROFST", "OFST"}, combined["STAT_UNIT"])
	assert.Equal(t, []string{"_T"}, combined["SEX"])
}
