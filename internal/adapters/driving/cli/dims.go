package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "Discover the dataflow's dimension order from the provider",
	Long: `Runs a keys-only query against the provider and prints the dataflow's
ordered dimension list. Dimensions marked queryable may appear in filter
paths; the time period is filtered through start/end bounds instead.`,
	Args: cobra.NoArgs,
	RunE: runDims,
}

func init() {
	rootCmd.AddCommand(dimsCmd)
}

func runDims(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	dims, err := providerClient.Dimensions(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovering dimensions: %w", err)
	}
	for i, dim := range dims {
		note := ""
		switch dim {
		case domain.DimPeriod:
			note = "  (filtered via start/end bounds)"
		case domain.DimArea:
			note = "  (filtered via --country)"
		}
		cmd.Printf("%2d  %s%s\n", i+1, dim, note)
	}
	return nil
}
