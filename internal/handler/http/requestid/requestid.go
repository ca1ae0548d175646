// Package requestid propagates a per-request ID through headers, context and logs.
package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey is the context key for storing request IDs.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader is the HTTP header name for request IDs.
	RequestIDHeader = "X-Request-ID"
)

// inbound IDs end up in logs verbatim
var validID = regexp.MustCompile(`^[A-Za-z0-9._\-]{1,64}$`)

// FromContext returns the request ID, or "" when none is set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// New returns a time-ordered UUID (v7), falling back to v4.
func New() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}

// Middleware reuses a well-formed X-Request-ID from the client or generates
// one, then sets it on the response header and the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validID.MatchString(requestID) {
			requestID = New()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), requestID)))
	})
}
