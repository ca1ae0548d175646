// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application metrics that are not tied to the HTTP layer:
//   - Lifecycle metrics (transitions, rejected requests)
//   - Widget fetch metrics
//   - Publish job metrics
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "announce-feed/internal/observability/metrics"
//
//	func publish(a *entity.Announcement) {
//	    from := a.Status
//	    // ... transition and persist ...
//	    metrics.RecordTransition(from, entity.StatusPublished)
//	}
package metrics
