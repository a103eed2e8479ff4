package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	meter = otel.Meter("leftovers/business")

	// Generation metrics
	RecipeGenerationsTotal metric.Int64Counter
	ImageGenerationsTotal  metric.Int64Counter
	GenerationDuration     metric.Float64Histogram
	ValidationWarnings     metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

// Instruments default to no-ops so packages can record before Init runs
// (tests, the CLI without an exporter).
func init() {
	np := noop.NewMeterProvider().Meter("leftovers/noop")
	RecipeGenerationsTotal, _ = np.Int64Counter("noop")
	ImageGenerationsTotal, _ = np.Int64Counter("noop")
	GenerationDuration, _ = np.Float64Histogram("noop")
	ValidationWarnings, _ = np.Int64Counter("noop")
	ExternalAPICallsTotal, _ = np.Int64Counter("noop")
	ExternalAPIDuration, _ = np.Float64Histogram("noop")
}

func Init() error {
	var err error

	RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generations, by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ImageGenerationsTotal, err = meter.Int64Counter(
		"image.generations.total",
		metric.WithDescription("Total number of dish image generations, by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	GenerationDuration, err = meter.Float64Histogram(
		"generation.duration",
		metric.WithDescription("Duration of a full recipe-then-image generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ValidationWarnings, err = meter.Int64Counter(
		"generation.validation.warnings",
		metric.WithDescription("Generation requests rejected by ingredient validation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	return nil
}
