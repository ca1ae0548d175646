// Package http holds the HTTP plumbing shared by the API server and the
// publish worker: logging, recovery, input limits, metrics and health probes.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/metrics"

	"github.com/sony/gobreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // healthy, degraded or unhealthy
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerState is implemented by the circuit-breaking record store.
type BreakerState interface {
	State() gobreaker.State
}

// HealthHandler reports database connectivity and the record store breaker.
// An open breaker is reported as degraded and does not fail the probe, since
// the breaker recovers on its own.
type HealthHandler struct {
	DB      *sql.DB
	Breaker BreakerState
	Version string
}

// ServeHTTP returns 200 when healthy or degraded and 503 when the database is unreachable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{}
	healthy := true

	db := h.checkDatabase(ctx)
	checks["database"] = db
	if db.Status == "unhealthy" {
		healthy = false
	}
	if h.Breaker != nil {
		checks["record_store"] = h.checkBreaker()
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Default().Warn("health: database ping failed", slog.String("error", respond.SanitizeError(err)))
		return CheckStatus{Status: "unhealthy", Message: "database unreachable"}
	}

	stats := h.DB.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80 {
			return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkBreaker() CheckStatus {
	state := h.Breaker.State()
	check := CheckStatus{Status: "healthy", Details: map[string]any{"circuit_breaker": state.String()}}
	if state != gobreaker.StateClosed {
		check.Status = "degraded"
		check.Message = "record store circuit breaker is " + state.String()
	}
	return check
}

// ReadyHandler answers readiness probes: 200 once the database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes and always returns 200.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("alive"))
}
