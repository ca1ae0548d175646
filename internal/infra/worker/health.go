package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthServer exposes liveness (/health) and readiness (/ready) for the
// worker. It starts not ready; the worker flips it once the scheduler runs.
type HealthServer struct {
	addr    string
	logger  *slog.Logger
	isReady atomic.Bool
	server  *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{addr: addr, logger: logger}
}

// Handler returns the routes without binding a listener.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /ready", h.handleReadiness)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
// It returns nil on a clean shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:              h.addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		errCh <- h.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		h.logger.Error("health server failed", slog.Any("error", err))
		return err
	}
}

func (h *HealthServer) SetReady(ready bool) {
	if h.isReady.Swap(ready) != ready {
		h.logger.Info("worker readiness changed", slog.Bool("ready", ready))
	}
}

func (h *HealthServer) Ready() bool { return h.isReady.Load() }

func (h *HealthServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, "ok")
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if h.isReady.Load() {
		h.write(w, http.StatusOK, "ok")
		return
	}
	h.write(w, http.StatusServiceUnavailable, "not ready")
}

func (h *HealthServer) write(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: status}); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
