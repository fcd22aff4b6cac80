package results

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type instruments struct {
	outcomes  metric.Int64Counter
	batchSize metric.Int64Histogram
}

func newInstruments(provider metric.MeterProvider) (instruments, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("internal/results")

	outcomes, err := meter.Int64Counter(
		"results.outcomes",
		metric.WithDescription("Terminal outcomes of single roll number fetches."),
	)
	if err != nil {
		return instruments{}, err
	}
	batchSize, err := meter.Int64Histogram(
		"results.batch_size",
		metric.WithDescription("Amount of roll numbers per batch."),
	)
	if err != nil {
		return instruments{}, err
	}

	return instruments{outcomes: outcomes, batchSize: batchSize}, nil
}

func (i instruments) recordOutcome(ctx context.Context, status Status, cause Cause) {
	i.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", string(status)),
		attribute.String("cause", string(cause)),
	))
}
