package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total token requests by role and result",
		},
		[]string{"role", "result"}, // result: success | failure
	)

	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Token request duration by role",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"role"},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token verification and role check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Requests rejected by role permissions",
		},
		[]string{"role", "method"},
	)
)

// RecordAuthRequest records a token request outcome.
func RecordAuthRequest(role, result string) {
	authRequestsTotal.WithLabelValues(role, result).Inc()
}

// RecordAuthDuration records how long a token request took.
func RecordAuthDuration(role string, seconds float64) {
	authDuration.WithLabelValues(role).Observe(seconds)
}

// RecordAuthzCheckDuration records how long Authz spent on a request.
func RecordAuthzCheckDuration(seconds float64) {
	authzCheckDuration.Observe(seconds)
}

// RecordForbiddenAttempt counts a request denied by role.
func RecordForbiddenAttempt(role, method string) {
	forbiddenAttempts.WithLabelValues(role, method).Inc()
}
