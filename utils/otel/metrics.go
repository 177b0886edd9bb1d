package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for feedcore.
var Metrics *FeedcoreMetrics

// FeedcoreMetrics contains all metric instruments.
type FeedcoreMetrics struct {
	UpstreamFetchTotal    metric.Int64Counter
	UpstreamFetchDuration metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("feedcore")

	fetchTotal, err := meter.Int64Counter("feedcore_upstream_fetch_total",
		metric.WithDescription("Total number of upstream fetches including redirects"),
	)
	if err != nil {
		return err
	}

	fetchDuration, err := meter.Float64Histogram("feedcore_upstream_fetch_duration_seconds",
		metric.WithDescription("Upstream fetch duration in seconds, until headers arrive"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &FeedcoreMetrics{
		UpstreamFetchTotal:    fetchTotal,
		UpstreamFetchDuration: fetchDuration,
	}

	return nil
}

// RecordUpstreamFetch is a no-op until InitMetrics has run.
func RecordUpstreamFetch(ctx context.Context, outcome string, elapsed time.Duration) {
	if Metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	Metrics.UpstreamFetchTotal.Add(ctx, 1, attrs)
	Metrics.UpstreamFetchDuration.Record(ctx, elapsed.Seconds(), attrs)
}
