package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	scoringCounter  otelmetric.Int64Counter
	scoringDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	scoringCounter, _ := meter.Int64Counter(
		"scoring.runs",
		otelmetric.WithDescription("Number of scoring runs processed"),
	)

	scoringDuration, _ := meter.Float64Histogram(
		"scoring.duration",
		otelmetric.WithDescription("Scoring run duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		scoringCounter:  scoringCounter,
		scoringDuration: scoringDuration,
	}
}

// RecordScoringRun counts one scoring run with its terminal status.
func (o *Observability) RecordScoringRun(ctx context.Context, status string) {
	if o.scoringCounter != nil {
		o.scoringCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// RecordScoringDuration records how long a scoring run took.
func (o *Observability) RecordScoringDuration(ctx context.Context, duration time.Duration, status string) {
	if o.scoringDuration != nil {
		o.scoringDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
