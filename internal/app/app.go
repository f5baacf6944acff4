package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/qidlabs/flightcapacity/internal/cargo"
	"github.com/qidlabs/flightcapacity/internal/controllers/notify"
	"github.com/qidlabs/flightcapacity/internal/controllers/refresher"
	"github.com/qidlabs/flightcapacity/internal/database"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/internal/log"
	"github.com/qidlabs/flightcapacity/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfgData, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}
	config.ApplyEnvOverrides(cfgData)

	store := flightquery.NewStore()
	fetcher := a.buildFetcher(cfgData)

	refreshController := refresher.NewController(ctx, &wg, store, fetcher, cfgData.Refresh, a.logger)
	if err := refreshController.StartController(); err != nil {
		return err
	}

	notifyController, err := notify.NewController(ctx, &wg, cfgData.HTTP, store, refreshController, a.logger)
	if err != nil {
		return err
	}
	if err := notifyController.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}

// buildFetcher picks the cargo data source. No database configuration
// means synthetic mode; a configured database is wrapped in the
// configured fallback policy, and a failed initial connection degrades
// the same way a failed fetch would.
func (a *App) buildFetcher(cfgData *config.ConfigData) cargo.Fetcher {
	synthetic := cargo.NewSyntheticFetcher()

	if !cfgData.Database.Complete() {
		log.Info("database not configured; running in synthetic data mode")
		return synthetic
	}

	dbClient := database.NewClient(cfgData.Database, a.logger)
	if err := dbClient.Connect(); err != nil {
		if cfgData.Refresh.Fallback() == config.FallbackError {
			connectErr := err
			return cargo.FetchFunc(func(q flightquery.FlightQuery) ([]cargo.Record, error) {
				return nil, connectErr
			})
		}
		log.Warnf("database connection failed; running in synthetic data mode: %v", err)
		return synthetic
	}

	dbFetcher := cargo.NewDBFetcher(dbClient, &cfgData.Refresh)
	return cargo.NewFallbackFetcher(dbFetcher, synthetic, cfgData.Refresh.Fallback())
}
