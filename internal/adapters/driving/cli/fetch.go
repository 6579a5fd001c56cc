package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

var (
	fetchCountries []string
	fetchStart     string
	fetchEnd       string
	fetchScope     string
	fetchBy        string
	fetchLatest    bool
	fetchTable     bool
	fetchNoMeta    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [indicator]",
	Short: "Fetch observations for an indicator",
	Long: `Resolves an indicator reference, queries the provider and prints the
arranged result. By default the nested indicator → area → period mapping
is printed as JSON; --table switches to the flat tabular view and
--latest keeps only the newest observation per area and disaggregation.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringSliceVarP(&fetchCountries, "country", "c", nil, "area code filter (repeatable)")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "start period, e.g. 2012")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "end period, e.g. 2016")
	fetchCmd.Flags().StringVar(&fetchScope, "scope", "self", "family expansion: self, sub or all")
	fetchCmd.Flags().StringVar(&fetchBy, "by", "", "keep only indicators disaggregable by this dimension")
	fetchCmd.Flags().BoolVar(&fetchLatest, "latest", false, "keep only the latest observation per area (implies --table)")
	fetchCmd.Flags().BoolVar(&fetchTable, "table", false, "print the flat tabular view")
	fetchCmd.Flags().BoolVar(&fetchNoMeta, "no-metadata", false, "omit the metadata branch")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	scope, err := domain.ParseScope(fetchScope)
	if err != nil {
		return fmt.Errorf("invalid scope %q (want self, sub or all)", fetchScope)
	}

	resolved, err := resolverService.FuzzyLookup(args[0], domain.ResolveOptions{Scope: scope, By: fetchBy})
	if err != nil {
		return err
	}
	if resolved.Empty() {
		return fmt.Errorf("no indicator in scope supports disaggregation by %q", fetchBy)
	}

	params, err := queryService.Build(resolved.Records, domain.QueryOptions{
		Areas: fetchCountries,
		Start: fetchStart,
		End:   fetchEnd,
	})
	if err != nil {
		return err
	}

	msg, err := providerClient.Data(ctx, params)
	if err != nil {
		return fmt.Errorf("fetching data: %w", err)
	}

	if fetchLatest || fetchTable {
		table, err := translateService.Table(msg)
		if err != nil {
			return err
		}
		if fetchLatest {
			table = translateService.LatestByArea(table)
		}
		printTable(cmd, table)
		return nil
	}

	meta := domain.AllMetadata()
	if fetchNoMeta {
		meta = nil
	}
	nested, err := translateService.Arrange(msg, meta)
	if err != nil {
		return err
	}
	return printNested(cmd, nested)
}

func printNested(cmd *cobra.Command, nested *domain.Nested) error {
	payload := map[string]any{"data": renderNestedData(nested)}
	if nested.Metadata != nil {
		payload["metadata"] = nested.Metadata
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// renderNestedData converts Value leaves to plain JSON scalars.
func renderNestedData(nested *domain.Nested) map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any, len(nested.Data))
	for indicator, areas := range nested.Data {
		out[indicator] = make(map[string]map[string]any, len(areas))
		for area, periods := range areas {
			out[indicator][area] = make(map[string]any, len(periods))
			for period, value := range periods {
				if value.IsNumber {
					out[indicator][area][period] = value.Number
				} else {
					out[indicator][area][period] = value.Text
				}
			}
		}
	}
	return out
}

func printTable(cmd *cobra.Command, table *domain.Table) {
	if len(table.Rows) == 0 {
		cmd.Println("No observations.")
		return
	}
	header := append([]string{"indicator", "area", "period"}, table.DimensionColumns...)
	header = append(header, "value")
	cmd.Println(strings.Join(header, "\t"))
	for _, row := range table.Rows {
		fields := []string{row.Indicator, row.Area, row.Period}
		for _, col := range table.DimensionColumns {
			fields = append(fields, row.Dimension(col))
		}
		fields = append(fields, row.Value.String())
		cmd.Println(strings.Join(fields, "\t"))
	}
}
