package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"announce-feed/internal/handler/http/respond"
)

// StoreHealthResponse reports the record store circuit breaker.
type StoreHealthResponse struct {
	Healthy bool   `json:"healthy"`
	Breaker string `json:"breaker"`
}

type breakerState interface {
	State() gobreaker.State
}

// newMetricsServer exposes:
//   - GET /metrics        Prometheus scrape endpoint
//   - GET /health/store   503 while the record store breaker is open
func newMetricsServer(port int, store breakerState) *http.Server {
	if port <= 0 || port > 65535 {
		port = 9090
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health/store", storeHealthHandler(store))

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// serveMetrics runs server until ctx is canceled, then drains it within 5s.
func serveMetrics(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", slog.Any("error", err))
		return err
	}
	logger.Info("metrics server stopped")
	return nil
}

func storeHealthHandler(store breakerState) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		state := store.State()
		resp := StoreHealthResponse{
			Healthy: state != gobreaker.StateOpen,
			Breaker: state.String(),
		}
		code := http.StatusOK
		if !resp.Healthy {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(w, code, resp)
	}
}
