package metrics_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/JaimeStill/palette/pkg/lifecycle"
	"github.com/JaimeStill/palette/pkg/metrics"
)

var discard = slog.New(slog.DiscardHandler)

func TestSinksAcceptObservations(t *testing.T) {
	tests := []struct {
		name string
		sink metrics.Sink
	}{
		{"nop", metrics.Nop()},
		{"noop provider", metrics.New(noop.NewMeterProvider(), discard)},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.sink.TemplateLearned(ctx, "ws-1")
			tt.sink.StyleProfileCreated(ctx, "ws-1")
			tt.sink.ObserveGeneration(ctx, "judge", 250*time.Millisecond, true)
			tt.sink.ObserveGeneration(ctx, "judge", time.Second, false)
		})
	}
}

// collect gathers every metric the reader has seen, keyed by instrument name.
func collect(t *testing.T, r *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := r.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func counterTotal(t *testing.T, data map[string]metricdata.Aggregation, name string) int64 {
	t.Helper()

	sum, ok := data[name].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: got %T, want int64 sum", name, data[name])
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestSinkRecordsThroughSDK(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	sink := metrics.New(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), discard)

	ctx := context.Background()
	sink.TemplateLearned(ctx, "ws-1")
	sink.TemplateLearned(ctx, "ws-1")
	sink.TemplateLearned(ctx, "ws-2")
	sink.StyleProfileCreated(ctx, "ws-1")
	sink.ObserveGeneration(ctx, "judge", 250*time.Millisecond, true)
	sink.ObserveGeneration(ctx, "judge", time.Second, false)

	data := collect(t, reader)

	if got := counterTotal(t, data, "palette.templates.learned"); got != 3 {
		t.Errorf("templates learned = %d, want 3", got)
	}
	if got := counterTotal(t, data, "palette.style_profiles.created"); got != 1 {
		t.Errorf("style profiles created = %d, want 1", got)
	}

	hist, ok := data["palette.generation.duration"].(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("generation duration: got %T, want float64 histogram", data["palette.generation.duration"])
	}
	if len(hist.DataPoints) != 2 {
		t.Fatalf("generation data points = %d, want one per outcome", len(hist.DataPoints))
	}
	for _, dp := range hist.DataPoints {
		if dp.Count != 1 {
			t.Errorf("count = %d, want 1", dp.Count)
		}
		outcome, _ := dp.Attributes.Value(attribute.Key("ok"))
		want := 1.0
		if outcome.AsBool() {
			want = 0.25
		}
		if dp.Sum != want {
			t.Errorf("ok=%v sum = %v, want %v", outcome.AsBool(), dp.Sum, want)
		}
	}
}

func TestProviderShutsDownWithLifecycle(t *testing.T) {
	cfg := metrics.Config{Enabled: true, Interval: "1h"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	p, err := metrics.NewProvider(context.Background(), &cfg, "palette", "test", discard)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	lc := lifecycle.New()
	if err := p.Start(lc); err != nil {
		t.Fatalf("Start: %v", err)
	}

	metrics.New(p.MeterProvider(), discard).TemplateLearned(context.Background(), "ws-1")

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestNewProviderOTLPDoesNotConnect(t *testing.T) {
	cfg := metrics.Config{Enabled: true, Exporter: metrics.ExporterOTLP, Endpoint: "collector:4318", Insecure: true}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	p, err := metrics.NewProvider(context.Background(), &cfg, "palette", "test", discard)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.MeterProvider() == nil {
		t.Error("expected a meter provider")
	}
}
