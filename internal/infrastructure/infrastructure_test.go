package infrastructure_test

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/JaimeStill/palette/internal/config"
	"github.com/JaimeStill/palette/internal/infrastructure"
	"github.com/JaimeStill/palette/pkg/cache"
	"github.com/JaimeStill/palette/pkg/database"
	"github.com/JaimeStill/palette/pkg/metrics"
	"github.com/JaimeStill/palette/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=palettestore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/palettestore;"

func validConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "palette",
			User:            "palette",
			Password:        "palette",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Version: "0.1.0",
	}
}

func TestNewDatabaseOnly(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Metrics == nil {
		t.Error("Metrics is nil")
	}
	if infra.Storage != nil {
		t.Error("Storage should be nil without a connection string")
	}
	if infra.Cache != nil {
		t.Error("Cache should be nil without an address")
	}

	conn := infra.Database.Connection()
	if conn == nil {
		t.Fatal("Database.Connection() returned nil")
	}
	conn.Close()
}

func TestNewOptionalSystems(t *testing.T) {
	cfg := validConfig()
	cfg.Storage = storage.Config{
		ContainerName:    "assets",
		ConnectionString: azuriteConnString,
	}
	cfg.Cache = cache.Config{
		Addr:        "localhost:6379",
		Prefix:      "palette",
		TTL:         "24h",
		DialTimeout: "5s",
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.Cache == nil {
		t.Error("Cache is nil")
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// cancels the startup pings; their outcome is not under test
	if err := infra.Lifecycle.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Storage = storage.Config{
		ContainerName:    "assets",
		ConnectionString: "not-a-connection-string",
	}

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for invalid storage connection string")
	}
}

func TestNewMetricsEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics = metrics.Config{
		Enabled:  true,
		Exporter: metrics.ExporterConsole,
		Interval: "1h",
		Timeout:  "5s",
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := otel.GetMeterProvider().(*sdkmetric.MeterProvider); !ok {
		t.Errorf("global meter provider = %T, want the SDK provider", otel.GetMeterProvider())
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Metrics.TemplateLearned(context.Background(), "ws-1")

	// flushes the provider alongside the other shutdown hooks
	if err := infra.Lifecycle.Shutdown(5 * time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewInvalidMetricsConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics = metrics.Config{Enabled: true, Exporter: "prometheus"}

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}
