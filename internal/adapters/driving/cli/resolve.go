package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

var (
	resolveScope   string
	resolveBy      string
	resolveTolFlag float64
	resolveJSON    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [query]",
	Short: "Resolve a fuzzy indicator reference",
	Long: `Resolves a free-text query, numeric ID, full dimension key or short key
to the matching indicator records, optionally expanded along the
indicator family and filtered by a disaggregation dimension.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveScope, "scope", "self", "family expansion: self, sub or all")
	resolveCmd.Flags().StringVar(&resolveBy, "by", "", "keep only indicators disaggregable by this dimension")
	resolveCmd.Flags().Float64Var(&resolveTolFlag, "tolerance", 0, "similarity cluster tolerance (0 = configured default)")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	scope, err := domain.ParseScope(resolveScope)
	if err != nil {
		return fmt.Errorf("invalid scope %q (want self, sub or all)", resolveScope)
	}

	result, err := resolverService.FuzzyLookup(args[0], domain.ResolveOptions{
		Scope:     scope,
		By:        resolveBy,
		Tolerance: resolveTolerance(resolveTolFlag),
	})
	if err != nil {
		return err
	}

	if resolveJSON {
		data, err := json.MarshalIndent(result.Records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if result.Empty() {
		cmd.Println("No indicator in scope supports that disaggregation.")
		return nil
	}
	for _, rec := range result.Records {
		line := fmt.Sprintf("%-16s %-14s %s", rec.ID, rec.ShortKey, rec.Label)
		if len(rec.FreeDimensions) > 0 {
			line += fmt.Sprintf("  [by %s]", strings.ToLower(strings.Join(rec.FreeDimensions, ", ")))
		}
		cmd.Println(line)
	}
	return nil
}
