package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config selects how the global tracer provider samples.
type Config struct {
	ServiceName string
	Version     string
	// SampleRatio in [0,1]; a sampled parent is always honoured.
	SampleRatio float64
	// Exporter receives finished spans. Nil keeps spans in-process only,
	// which still yields trace ids for log correlation.
	Exporter sdktrace.SpanExporter
}

// Setup installs a tracer provider and the W3C propagators globally.
// The returned function flushes and shuts the provider down.
func Setup(cfg Config) func(context.Context) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.Version),
		)),
	}
	if cfg.Exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(cfg.Exporter))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
