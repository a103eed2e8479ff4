// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing, logs and metrics across the leftovers service.
//
// The package configures OTLP HTTP export for every signal and leaves the
// global no-op providers in place when no collector endpoint is configured.
package telemetry
