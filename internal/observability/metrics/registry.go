// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// AnnouncementTransitionsTotal counts accepted status transitions
	AnnouncementTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "announcement_transitions_total",
			Help: "Total number of accepted announcement status transitions",
		},
		[]string{"from", "to"},
	)

	// AnnouncementRejectedTotal counts lifecycle requests rejected before persistence
	AnnouncementRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "announcement_rejected_total",
			Help: "Total number of announcement requests rejected by validation or the transition table",
		},
		[]string{"reason"}, // reason: validation, transition
	)

	// WidgetFetchesTotal counts public widget fetches by result
	WidgetFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_fetches_total",
			Help: "Total number of public widget fetches",
		},
		[]string{"endpoint", "result"},
	)

	// WidgetItemsServed measures how many announcements one widget fetch returned
	WidgetItemsServed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "widget_items_served",
			Help:    "Number of announcements returned per widget fetch",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	// ScheduledPublishedTotal counts scheduled announcements published by the worker
	ScheduledPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduled_published_total",
			Help: "Total number of scheduled announcements processed by the publish job",
		},
		[]string{"status"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// BreakerState is 0 closed, 1 half-open, 2 open, matching gobreaker.State.
var BreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
	},
	[]string{"name"},
)
