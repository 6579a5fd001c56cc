package cli

import (
	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest [indicator]",
	Short: "Fetch only the newest observation per area",
	Long: `Shorthand for fetch --latest: resolves the indicator, queries the
provider and keeps, per area and disaggregation, only the observation
with the most recent period.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetchLatest = true
		return runFetch(cmd, args)
	},
}

func init() {
	latestCmd.Flags().StringSliceVarP(&fetchCountries, "country", "c", nil, "area code filter (repeatable)")
	latestCmd.Flags().StringVar(&fetchStart, "start", "", "start period, e.g. 2012")
	latestCmd.Flags().StringVar(&fetchEnd, "end", "", "end period, e.g. 2016")
	latestCmd.Flags().StringVar(&fetchScope, "scope", "self", "family expansion: self, sub or all")
	latestCmd.Flags().StringVar(&fetchBy, "by", "", "keep only indicators disaggregable by this dimension")
	rootCmd.AddCommand(latestCmd)
}
