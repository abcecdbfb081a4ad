package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/JaimeStill/palette/pkg/lifecycle"
)

// Provider owns an OpenTelemetry SDK meter provider that pushes to the
// configured exporter on a fixed interval.
type Provider struct {
	mp      *sdkmetric.MeterProvider
	timeout time.Duration
	logger  *slog.Logger
}

// NewProvider builds a meter provider for service. Nothing is exported until
// the first interval elapses or Shutdown flushes.
func NewProvider(ctx context.Context, cfg *Config, service, version string, logger *slog.Logger) (*Provider, error) {
	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(service),
		semconv.ServiceVersionKey.String(version),
	))
	if err != nil {
		return nil, fmt.Errorf("metrics resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(cfg.IntervalDuration()),
		sdkmetric.WithTimeout(cfg.TimeoutDuration()),
	)

	logger = logger.With("system", "metrics")
	logger.Debug("metrics provider initialized",
		"exporter", cfg.Exporter,
		"interval", cfg.Interval,
	)

	return &Provider{
		mp: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(res),
		),
		timeout: cfg.TimeoutDuration(),
		logger:  logger,
	}, nil
}

func newExporter(ctx context.Context, cfg *Config) (sdkmetric.Exporter, error) {
	switch cfg.Exporter {
	case ExporterOTLP:
		var opts []otlpmetrichttp.Option
		if cfg.Endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		return exp, nil
	case ExporterConsole:
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("console exporter: %w", err)
		}
		return exp, nil
	}
	return nil, fmt.Errorf("unsupported exporter %q", cfg.Exporter)
}

// MeterProvider returns the provider instruments should be created on.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.mp
}

// Start registers a final flush and provider shutdown on lc.
func (p *Provider) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.mp.Shutdown(ctx); err != nil {
			p.logger.Error("metrics shutdown failed", "error", err)
		}
	})
	return nil
}
