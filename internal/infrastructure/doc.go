// Package infrastructure provides cross-cutting runtime concerns: the
// global slog logger, trace-id context plumbing, and OpenTelemetry
// metrics/tracing setup with a Prometheus export handler.
package infrastructure
