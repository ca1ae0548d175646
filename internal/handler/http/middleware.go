package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"announce-feed/internal/handler/http/requestid"
	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
)

const (
	maxAuthHeaderBytes = 8 << 10
	maxPathBytes       = 2 << 10
	// DefaultMaxBodyBytes bounds announcement payloads including rich-text content.
	DefaultMaxBodyBytes = 1 << 20
)

// Logging logs one line per request with the request ID and the
// OpenTelemetry trace ID so logs and traces can be correlated.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())
			level := slog.LevelInfo
			if wrapped.StatusCode() >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover turns a panic into a 500 and logs it with the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				respond.SafeError(w, http.StatusInternalServerError, errors.New("internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// InputValidation rejects oversized Authorization headers and paths, and
// caps request bodies at maxBodyBytes.
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "authorization header too large"})
				return
			}
			if len(r.URL.Path) > maxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds the request context. Handlers and the record store observe
// the deadline through ctx; nothing is written on their behalf.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Chain applies middlewares so that the first one listed runs first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
