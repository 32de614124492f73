package app

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/i-melnichenko/store-lab/internal/store"

func initTracing(ctx context.Context, cfg Config, w io.Writer, logger Logger) (oteltrace.Tracer, func(context.Context) error, error) {
	if !cfg.TracingEnabled {
		return noop.NewTracerProvider().Tracer(tracerName), func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("init tracing exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.TracingServiceName),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("init tracing resource: %w", err)
	}

	// Synchronous export keeps span output in dispatch order.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	logger.Info(
		"tracing enabled",
		"exporter", "stdout",
		"service_name", cfg.TracingServiceName,
	)

	return tp.Tracer(tracerName), tp.Shutdown, nil
}
