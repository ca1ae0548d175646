package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"announce-feed/internal/handler/http/pathutil"
	"announce-feed/internal/handler/http/responsewriter"
)

// TraceIDHeader echoes the server span's trace id to the client.
const TraceIDHeader = "X-Trace-Id"

// Middleware opens a server span per request, continuing any W3C trace
// context carried by the request. Span names use the normalized route so
// announcement ids do not explode span cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			w.Header().Set(TraceIDHeader, sc.TraceID().String())
		}

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
