package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

var serviceName = semconv.ServiceNameKey.String("asset-janitor")

// Otel exports counters over OTLP/gRPC.
type Otel struct {
	counters      map[Name]metric.Int64Counter
	shutDownFuncs []func(ctx context.Context) error
}

var descriptions = map[Name]string{
	AssetsChecked:  "Number of assets whose references were checked",
	AssetsUnused:   "Number of assets classified as unused",
	ReferenceError: "Number of failed reference lookups",
	FoldersEmpty:   "Number of folders confirmed empty",
	AssetsDeleted:  "Number of deleted assets",
	FoldersDeleted: "Number of deleted folders",
	DeleteFailures: "Number of failed delete calls",
}

func NewOtel(ctx context.Context, endpoint string) (*Otel, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(serviceName))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource for OpenTelemetry: %w", err)
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}

	// Runs are short; the final flush happens in Shutdown
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter("asset-janitor")
	counters := make(map[Name]metric.Int64Counter, len(descriptions))
	for name, desc := range descriptions {
		c, err := meter.Int64Counter(string(name), metric.WithDescription(desc), metric.WithUnit("{item}"))
		if err != nil {
			return nil, err
		}
		counters[name] = c
	}

	return &Otel{
		counters:      counters,
		shutDownFuncs: []func(ctx context.Context) error{provider.Shutdown, func(context.Context) error { return conn.Close() }},
	}, nil
}

func (s *Otel) Add(name Name, n int64, attrs map[string]string) {
	c, ok := s.counters[name]
	if !ok || n == 0 {
		return
	}

	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	c.Add(context.Background(), n, metric.WithAttributeSet(attribute.NewSet(kv...)))
}

func (s *Otel) Shutdown(ctx context.Context) error {
	for _, fn := range s.shutDownFuncs {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}
