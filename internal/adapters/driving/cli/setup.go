package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/config/file"
	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/dictionary/csvfile"
	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/dictionary/sqlite"
	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/provider/uis"
	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/services"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// ensureServices wires the core services from configuration on first use.
// Tests inject fakes into the service variables instead.
func ensureServices(ctx context.Context) error {
	if resolverService != nil && queryService != nil && translateService != nil {
		return nil
	}

	if err := ensureConfigStore(); err != nil {
		return err
	}

	catalog, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Catalog ready: %d indicator(s)", catalog.Len())

	resolverService = services.NewResolver(catalog)
	queryService = services.NewQueryBuilder(domain.DefaultDataflow())
	translateService = services.NewTranslator(catalog)

	if providerClient == nil {
		providerClient = uis.NewClient(uis.Config{
			BaseURL:         configStore.GetString(file.KeyBaseURL),
			SubscriptionKey: configStore.GetString(file.KeySubscriptionKey),
		})
	}
	return nil
}

// ensureConfigStore opens the TOML config store on first use.
func ensureConfigStore() error {
	if configStore != nil {
		return nil
	}
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = cfg
	return nil
}

// loadCatalog builds the catalog from the cached dictionary store,
// falling back to the configured dictionary CSV.
func loadCatalog(ctx context.Context) (*domain.Catalog, error) {
	store, err := sqlite.NewStore(configDir)
	if err == nil {
		defer store.Close()
		records, loadErr := store.Load(ctx)
		if loadErr == nil && len(records) > 0 {
			logger.Debug("Dictionary loaded from cache %s", store.Path())
			return domain.NewCatalog(records)
		}
	}

	path := ""
	if configStore != nil {
		path = configStore.GetString(file.KeyDictionaryPath)
	}
	if path == "" {
		return nil, errors.New("no indicator dictionary: run `uisdata dict import <csv>` or set dictionary.path")
	}
	records, err := csvfile.NewLoader(path).Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewCatalog(records)
}

// resolveTolerance returns the configured cluster tolerance, or the
// command-line override when set.
func resolveTolerance(flagValue float64) float64 {
	if flagValue > 0 {
		return flagValue
	}
	if configStore != nil {
		return configStore.GetFloat(file.KeyTolerance)
	}
	return 0
}
