// Package cli provides the cobra command tree of the uisdata CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driven"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driving"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "0.3.0"

// Services are injected by ensureServices on first use, or directly by
// tests.
var (
	resolverService  driving.ResolverService
	queryService     driving.QueryService
	translateService driving.TranslateService
	providerClient   driven.Provider
	configStore      driven.ConfigStore
)

var (
	verboseFlag bool
	configDir   string
)

var rootCmd = &cobra.Command{
	Use:   "uisdata",
	Short: "Query UNESCO education statistics from the command line",
	Long: `uisdata resolves fuzzy indicator references against the UIS indicator
dictionary, queries the SDMX API and arranges the response into nested or
tabular form.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.uisdata)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
