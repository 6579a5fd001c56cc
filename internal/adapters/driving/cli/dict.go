package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/config/file"
	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/dictionary/csvfile"
	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/dictionary/sqlite"
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the local indicator dictionary",
}

var dictImportCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Import an indicator dictionary CSV into the local cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictImport,
}

var dictShowCmd = &cobra.Command{
	Use:   "show [identifier]",
	Short: "Show one dictionary record by ID, full key or short key",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictShow,
}

var dictWatchCmd = &cobra.Command{
	Use:   "watch [csv-file]",
	Short: "Watch a dictionary CSV and report reloads",
	Long: `Watches the dictionary file (the argument, or the configured
dictionary.path) and rebuilds the catalog on every change, reporting the
result. A broken intermediate save is reported without replacing the
previous catalog. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDictWatch,
}

func init() {
	dictCmd.AddCommand(dictImportCmd)
	dictCmd.AddCommand(dictShowCmd)
	dictCmd.AddCommand(dictWatchCmd)
	rootCmd.AddCommand(dictCmd)
}

func runDictImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	records, err := csvfile.NewLoader(args[0]).Load(ctx)
	if err != nil {
		return err
	}
	// Validate before caching so a broken dictionary never sticks.
	if _, err := domain.NewCatalog(records); err != nil {
		return fmt.Errorf("invalid dictionary: %w", err)
	}

	store, err := sqlite.NewStore(configDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, records); err != nil {
		return err
	}
	cmd.Printf("Imported %d indicator(s) into %s\n", len(records), store.Path())
	return nil
}

func runDictWatch(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		if err := ensureConfigStore(); err != nil {
			return err
		}
		path = configStore.GetString(file.KeyDictionaryPath)
	}
	if path == "" {
		return errors.New("no dictionary to watch: pass a csv file or set dictionary.path")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := csvfile.NewWatcher(csvfile.NewLoader(path),
		func(catalog *domain.Catalog) {
			cmd.Printf("Dictionary reloaded: %d indicator(s)\n", catalog.Len())
		},
		func(err error) {
			cmd.PrintErrf("Reload failed: %v\n", err)
		})

	cmd.Printf("Watching %s (interrupt to stop)\n", path)
	if err := watcher.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDictShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	rec, err := resolverService.LookupExact(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("ID:              %s\n", rec.ID)
	cmd.Printf("Full key:        %s\n", rec.FullKey)
	cmd.Printf("Short key:       %s\n", rec.ShortKey)
	cmd.Printf("Label:           %s\n", rec.Label)
	cmd.Printf("Family:          %s\n", rec.FamilyID)
	cmd.Printf("Free dimensions: %s\n", strings.Join(rec.FreeDimensions, ", "))
	return nil
}
