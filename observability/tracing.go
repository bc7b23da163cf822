package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "financial-chat-analyzer"

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	tracingEnabled bool
)

// InitTracing installs a stdout span exporter when enabled. With tracing
// disabled StartSpan returns the span already in the context.
func InitTracing(enabled bool) error {
	tracingEnabled = enabled
	if !enabled {
		return nil
	}

	exporter, err := stdouttrace.New()
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(serviceName)
	return nil
}

// ShutdownTracing flushes pending spans
func ShutdownTracing(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}

// StartSpan starts a span when tracing is enabled
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !tracingEnabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// TracingEnabled reports whether spans are exported
func TracingEnabled() bool {
	return tracingEnabled
}
