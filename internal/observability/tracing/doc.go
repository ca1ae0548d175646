// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP Middleware opens a server span per request and echoes the trace id
// in the X-Trace-Id response header. StartSpan and EndSpan wrap service-layer
// operations in internal spans.
//
// Example usage:
//
//	func (s *Service) Publish(ctx context.Context, id string) (err error) {
//	    ctx, span := tracing.StartSpan(ctx, "announcement.Publish")
//	    defer func() { tracing.EndSpan(span, err) }()
//	    // ...
//	}
package tracing
