package metrics

import (
	"time"

	"announce-feed/internal/domain/entity"
)

// RecordTransition records an accepted status change.
func RecordTransition(from, to entity.Status) {
	AnnouncementTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

// RecordValidationRejected records a create or update refused because of field errors.
func RecordValidationRejected() {
	AnnouncementRejectedTotal.WithLabelValues("validation").Inc()
}

// RecordTransitionRejected records a status change refused by the transition table
// or by the scheduling rule.
func RecordTransitionRejected() {
	AnnouncementRejectedTotal.WithLabelValues("transition").Inc()
}

// RecordWidgetFetch records one public widget request.
// Endpoint is "json" or "rss"; items is ignored when success is false.
func RecordWidgetFetch(endpoint string, success bool, items int) {
	result := "success"
	if !success {
		result = "failure"
	}
	WidgetFetchesTotal.WithLabelValues(endpoint, result).Inc()
	if success {
		WidgetItemsServed.Observe(float64(items))
	}
}

// RecordScheduledPublished records the outcome of one due announcement in the publish job.
func RecordScheduledPublished(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ScheduledPublishedTotal.WithLabelValues(status).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_published", "update_announcement").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordBreakerState publishes a breaker transition.
func RecordBreakerState(name string, state int) {
	BreakerState.WithLabelValues(name).Set(float64(state))
}
