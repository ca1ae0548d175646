// Package observability groups the logging, metrics and tracing packages
// shared by the API server, the publish worker and the widget CLI.
//
// Subpackages:
//   - logging: slog constructors and request-scoped loggers
//   - metrics: Prometheus business and database metrics
//   - tracing: OpenTelemetry provider setup, HTTP middleware and span helpers
//
// Example:
//
//	logger := logging.NewLogger()
//	metrics.RecordTransition(entity.StatusDraft, entity.StatusPublished)
package observability
