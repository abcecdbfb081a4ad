// Package infrastructure assembles the shared systems palette's engine needs
// (logging, database, optional blob storage and cache, metrics) and registers
// them with a lifecycle coordinator.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/JaimeStill/palette/internal/config"
	"github.com/JaimeStill/palette/pkg/cache"
	"github.com/JaimeStill/palette/pkg/database"
	"github.com/JaimeStill/palette/pkg/lifecycle"
	"github.com/JaimeStill/palette/pkg/metrics"
	"github.com/JaimeStill/palette/pkg/storage"
)

// schemaTables must exist before any command runs; cmd/migrate creates them.
var schemaTables = []string{
	"public.captions",
	"public.generated_assets",
	"public.templates",
	"public.style_profiles",
}

// Infrastructure holds the core systems required by the engine.
// Storage and Cache are nil when their config sections are not set.
// Metrics records into a no-op provider unless metrics are enabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     cache.System
	Metrics   metrics.Sink

	meters *metrics.Provider
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger, schemaTables...)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Metrics:   metrics.Nop(),
	}

	if cfg.Metrics.Enabled {
		meters, err := metrics.NewProvider(context.Background(), &cfg.Metrics, "palette", cfg.Version, logger)
		if err != nil {
			return nil, fmt.Errorf("metrics init failed: %w", err)
		}
		otel.SetMeterProvider(meters.MeterProvider())
		infra.meters = meters
		infra.Metrics = metrics.New(meters.MeterProvider(), logger)
	}

	if cfg.Storage.Enabled() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	if cfg.Cache.Enabled() {
		infra.Cache = cache.New(&cfg.Cache, logger)
	}

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	if i.Cache != nil {
		if err := i.Cache.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("cache start failed: %w", err)
		}
	}
	if i.meters != nil {
		if err := i.meters.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("metrics start failed: %w", err)
		}
	}
	return nil
}
