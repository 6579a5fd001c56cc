package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/config/file"
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/services"
)

type fakeProvider struct {
	params domain.ParamSet
	msg    *domain.Message
	err    error
}

func (f *fakeProvider) Data(_ context.Context, params domain.ParamSet) (*domain.Message, error) {
	f.params = params
	return f.msg, f.err
}

func (f *fakeProvider) Dimensions(context.Context) ([]string, error) {
	return nil, f.err
}

// injectServices wires the command tree to an in-memory catalog and a
// canned provider payload, restoring the previous wiring afterwards.
func injectServices(t *testing.T, provider *fakeProvider) {
	t.Helper()

	catalog, err := domain.NewCatalog([]domain.IndicatorRecord{
		{
			ID:             "ROFST.1.cp",
			FullKey:        "ROFST.PT.L1._T",
			ShortKey:       "rofst-1",
			Label:          "Out-of-school rate, primary",
			FamilyID:       "ROFST.1",
			FreeDimensions: []string{"SEX"},
		},
	})
	require.NoError(t, err)

	prevResolver, prevQuery, prevTranslate, prevProvider :=
		resolverService, queryService, translateService, providerClient
	t.Cleanup(func() {
		resolverService, queryService, translateService, providerClient =
			prevResolver, prevQuery, prevTranslate, prevProvider
	})

	resolverService = services.NewResolver(catalog)
	queryService = services.NewQueryBuilderFromDiscovery(
		[]string{"STAT_UNIT", "UNIT_MEASURE", "EDU_LEVEL", "SEX", domain.DimArea, domain.DimPeriod})
	translateService = services.NewTranslator(catalog)
	providerClient = provider
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "uisdata version "+version)
}

func TestResolveCommand(t *testing.T) {
	injectServices(t, &fakeProvider{})

	out, err := runCommand(t, "resolve", "rofst-1")
	require.NoError(t, err)
	assert.Contains(t, out, "ROFST.1.cp")
	assert.Contains(t, out, "Out-of-school rate, primary")
	assert.Contains(t, out, "[by sex]")
}

func TestResolveCommand_InvalidScope(t *testing.T) {
	injectServices(t, &fakeProvider{})

	_, err := runCommand(t, "resolve", "rofst-1", "--scope", "everything")
	assert.Error(t, err)
}

func TestConfigCommand_SetAndGet(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	prev := configStore
	configStore = store
	t.Cleanup(func() { configStore = prev })

	_, err = runCommand(t, "config", "set", file.KeyTolerance, "0.08")
	require.NoError(t, err)

	out, err := runCommand(t, "config", "get", file.KeyTolerance)
	require.NoError(t, err)
	assert.Contains(t, out, "0.08")
}

func TestFetchCommand_Table(t *testing.T) {
	provider := &fakeProvider{msg: &domain.Message{
		DataSets: []domain.DataSet{{
			Observations: map[string][]any{"0:0:0:0:0:0": {12.3}},
		}},
		Structure: domain.Structure{
			Dimensions: domain.StructureAxis{Observation: []domain.Concept{
				{ID: "STAT_UNIT", Name: "Statistical unit", Values: []domain.ConceptValue{{ID: "ROFST", Name: "Out-of-school rate"}}},
				{ID: "UNIT_MEASURE", Name: "Unit of measure", Values: []domain.ConceptValue{{ID: "PT", Name: "Percentage"}}},
				{ID: "EDU_LEVEL", Name: "Education level", Values: []domain.ConceptValue{{ID: "L1", Name: "Primary"}}},
				{ID: "SEX", Name: "Sex", Values: []domain.ConceptValue{{ID: "_T", Name: "Total"}}},
				{ID: "REF_AREA", Name: "Reference area", Values: []domain.ConceptValue{{ID: "BD", Name: "Bangladesh"}}},
				{ID: "TIME_PERIOD", Name: "Time period", Values: []domain.ConceptValue{{ID: "2015", Name: "2015"}}},
			}},
		},
	}}
	injectServices(t, provider)

	out, err := runCommand(t, "fetch", "rofst-1", "--table", "--country", "BD", "--start", "2012")
	require.NoError(t, err)

	assert.Contains(t, out, "ROFST.PT.L1._T\tBD\t2015\t12.3")
	assert.Equal(t, "ROFST.PT.L1._T.BD", provider.params.FilterPath)
	assert.Equal(t, "2012", provider.params.StartPeriod)
}
