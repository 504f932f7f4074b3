package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer is the shared tracer for parse operations. Spans are no-ops until
// InitTracing installs a provider.
var Tracer = otel.Tracer("parsecheck")

// InitTracing installs an OTLP gRPC trace exporter pointed at endpoint and
// returns a shutdown function that flushes pending spans.
func InitTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "parsecheck"),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
