// Package tracing installs the OpenTelemetry tracer provider.
// This is part of the platform layer and contains no business logic.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted by TRACING_EXPORTER.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// ShutdownFunc flushes pending spans and releases the provider.
type ShutdownFunc func(ctx context.Context) error

// Config provides the tracing settings.
type Config interface {
	GetTracingExporter() string
}

// NewProvider builds a tracer provider for the configured exporter. Spans of
// the stdout exporter are written to w as JSON.
func NewProvider(cfg Config, service string, w io.Writer) (trace.TracerProvider, ShutdownFunc, error) {
	switch cfg.GetTracingExporter() {
	case "", ExporterNone:
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(sdkresource.NewSchemaless(attribute.String("service.name", service))),
		)
		return tp, tp.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("unknown tracing exporter %q", cfg.GetTracingExporter())
	}
}

// Install builds a provider with NewProvider and registers it globally.
func Install(cfg Config, service string, w io.Writer) (ShutdownFunc, error) {
	tp, shutdown, err := NewProvider(cfg, service, w)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return shutdown, nil
}
