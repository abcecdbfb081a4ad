// Package metrics records palette's learning and generation telemetry through
// OpenTelemetry instruments. Recording never blocks or fails the caller.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Sink receives fire-and-forget observations from the engine.
type Sink interface {
	TemplateLearned(ctx context.Context, workspaceID string)
	StyleProfileCreated(ctx context.Context, workspaceID string)
	ObserveGeneration(ctx context.Context, operation string, d time.Duration, ok bool)
}

type otelSink struct {
	learned    metric.Int64Counter
	profiles   metric.Int64Counter
	generation metric.Float64Histogram
}

// New builds a Sink on provider. Instrument construction failures are logged
// and replaced with no-op instruments.
func New(provider metric.MeterProvider, logger *slog.Logger) Sink {
	meter := provider.Meter("github.com/JaimeStill/palette")
	fallback := noop.NewMeterProvider().Meter("palette")
	logger = logger.With("system", "metrics")

	learned, err := meter.Int64Counter(
		"palette.templates.learned",
		metric.WithDescription("Templates synthesized from approved captions"),
	)
	if err != nil {
		logger.Warn("template counter unavailable", "error", err)
		learned, _ = fallback.Int64Counter("palette.templates.learned")
	}

	profiles, err := meter.Int64Counter(
		"palette.style_profiles.created",
		metric.WithDescription("Style profiles derived from approved assets"),
	)
	if err != nil {
		logger.Warn("style profile counter unavailable", "error", err)
		profiles, _ = fallback.Int64Counter("palette.style_profiles.created")
	}

	generation, err := meter.Float64Histogram(
		"palette.generation.duration",
		metric.WithDescription("Duration of delegated generation calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("generation histogram unavailable", "error", err)
		generation, _ = fallback.Float64Histogram("palette.generation.duration")
	}

	return &otelSink{
		learned:    learned,
		profiles:   profiles,
		generation: generation,
	}
}

// Nop returns a Sink that discards every observation.
func Nop() Sink {
	return New(noop.NewMeterProvider(), slog.New(slog.DiscardHandler))
}

func (s *otelSink) TemplateLearned(ctx context.Context, workspaceID string) {
	s.learned.Add(ctx, 1, metric.WithAttributes(attribute.String("workspace_id", workspaceID)))
}

func (s *otelSink) StyleProfileCreated(ctx context.Context, workspaceID string) {
	s.profiles.Add(ctx, 1, metric.WithAttributes(attribute.String("workspace_id", workspaceID)))
}

func (s *otelSink) ObserveGeneration(ctx context.Context, operation string, d time.Duration, ok bool) {
	s.generation.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("ok", ok),
	))
}
