package main

import (
	"context"
	"essensys-server/internal/infra/node"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

type ShutdownFunc func() error

const (
	_defaultEndpoint = "localhost:4317"
	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
)

func startOTel() ShutdownFunc {
	slog.Info("starting OTel providers", slog.String("endpoint", collectorEndpoint()))
	shutdown, err := otelStart(context.Background())
	if err != nil {
		panic(err)
	}

	return shutdown
}

func otelStart(ctx context.Context) (ShutdownFunc, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("essensys-server"),
		semconv.ServiceVersionKey.String(node.Version),
	)

	metricsShutdownFunc, err := startMetricsProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	traceShutdownFunc, err := startTraceProvider(ctx, res)
	if err != nil {
		return nil, err
	}
	otel.SetTextMapPropagator(b3.New())

	return func() error {
		if err := metricsShutdownFunc(); err != nil {
			return err
		}
		return traceShutdownFunc()
	}, nil
}

func collectorEndpoint() string {
	if value, ok := os.LookupEnv("ESSENSYS_SERVER_OTELCOL_ENDPOINT"); ok {
		return value
	}
	return _defaultEndpoint
}

func startTraceProvider(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(collectorEndpoint()),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func startMetricsProvider(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(collectorEndpoint()),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(
			metric.NewPeriodicReader(
				exp,
				metric.WithTimeout(_collectTimeout),
				metric.WithInterval(_collectPeriod))),
	)
	otel.SetMeterProvider(mp)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval)); err != nil {
		return nil, err
	}

	return func() error {
		return mp.Shutdown(ctx)
	}, nil
}
