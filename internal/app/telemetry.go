package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	serviceName          = "movie-checkout-api"
	metricExportInterval = 15 * time.Second
	telemetryStopTimeout = 5 * time.Second
)

type shutdownFunc func(context.Context) error

// InitTelemetry installs global trace, metric and log providers exporting to
// the configured collector. The returned function flushes and stops them.
// Without a collector URL nothing is installed.
func InitTelemetry(cfg Config, logger *slog.Logger) (func(context.Context), error) {
	if cfg.OtelCollectorUrl == "" {
		logger.Info("otel collector url not set, telemetry disabled")
		return func(context.Context) {}, nil
	}

	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironment(cfg.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	var shutdowns []shutdownFunc
	stop := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, telemetryStopTimeout)
		defer cancel()

		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		if err := errors.Join(errs...); err != nil {
			logger.Error("failed to stop telemetry", "error", err)
		}
	}

	for _, start := range []func(context.Context, Config, *resource.Resource) (shutdownFunc, error){
		startTracing,
		startMetrics,
		startLogs,
	} {
		fn, err := start(ctx, cfg, res)
		if err != nil {
			stop(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, fn)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("telemetry enabled", "collector", cfg.OtelCollectorUrl, "sample_ratio", cfg.OtelSampleRatio)

	return stop, nil
}

func startTracing(ctx context.Context, cfg Config, res *resource.Resource) (shutdownFunc, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("otel trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.OtelSampleRatio))),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

func startMetrics(ctx context.Context, cfg Config, res *resource.Resource) (shutdownFunc, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("otel metric exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricExportInterval))),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

func startLogs(ctx context.Context, cfg Config, res *resource.Resource) (shutdownFunc, error) {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithInsecure(),
		otlploggrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("otel log exporter: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(provider)

	return provider.Shutdown, nil
}

// MultiHandler fans a record out to every handler enabled for its level.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{
		handlers: handlers,
	}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, handler.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

func (h *MultiHandler) each(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = fn(handler)
	}
	return &MultiHandler{handlers: handlers}
}
