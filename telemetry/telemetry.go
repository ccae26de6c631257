// Package telemetry exports the command interpreter's trace spans over OTLP
// when OTEL_ENABLED is set. Without it the global otel provider stays a no-op.
// With OTEL_LOGS_ENABLED as well, slog records are also bridged to an OTLP
// log exporter.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amp-labs/amp-sortedlist/envutil"
	"github.com/amp-labs/amp-sortedlist/logger"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	defaultServiceVersion = "1.0.0"
	defaultEnvironment    = "local"
	defaultTimeout        = 5 * time.Second
)

var (
	providerMutex  sync.Mutex               //nolint:gochecknoglobals
	tracerProvider *sdktrace.TracerProvider //nolint:gochecknoglobals
	loggerProvider *sdklog.LoggerProvider   //nolint:gochecknoglobals
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
	LogsEnabled    bool
	LogsEndpoint   string
}

// LoadConfigFromEnv reads OTEL_ENABLED, OTEL_SERVICE_NAME (default: the
// logging subsystem), OTEL_SERVICE_VERSION, OTEL_ENVIRONMENT,
// OTEL_EXPORTER_OTLP_TRACES_ENDPOINT, OTEL_EXPORTER_OTLP_TRACES_TIMEOUT,
// OTEL_LOGS_ENABLED and OTEL_EXPORTER_OTLP_LOGS_ENDPOINT.
func LoadConfigFromEnv(ctx context.Context) (*Config, error) {
	enabled, err := envutil.Bool(ctx, "OTEL_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	svcName, err := envutil.String(ctx, "OTEL_SERVICE_NAME", envutil.Default(logger.GetSubsystem(ctx))).Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envutil.String(ctx, "OTEL_SERVICE_VERSION", envutil.Default(defaultServiceVersion)).Value()
	if err != nil {
		return nil, err
	}

	environment, err := envutil.String(ctx, "OTEL_ENVIRONMENT", envutil.Default(defaultEnvironment)).Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envutil.String(ctx, "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", envutil.Default("")).Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envutil.Duration(ctx, "OTEL_EXPORTER_OTLP_TRACES_TIMEOUT", envutil.Default(defaultTimeout)).Value()
	if err != nil {
		return nil, err
	}

	logsEnabled, err := envutil.Bool(ctx, "OTEL_LOGS_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	logsEndpoint, err := envutil.String(ctx, "OTEL_EXPORTER_OTLP_LOGS_ENDPOINT", envutil.Default("")).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    environment,
		Endpoint:       endpoint,
		Enabled:        enabled,
		Timeout:        timeout,
		LogsEnabled:    logsEnabled,
		LogsEndpoint:   logsEndpoint,
	}, nil
}

// Initialize installs an OTLP/HTTP tracer provider as the otel global.
// Disabled configs, or configs without an endpoint, leave the no-op provider
// in place.
func Initialize(ctx context.Context, config *Config) error {
	log := logger.Get(ctx)

	if !config.Enabled {
		log.Debug("OpenTelemetry tracing is disabled")

		return nil
	}

	if config.Endpoint == "" {
		log.Warn("OpenTelemetry endpoint not configured, tracing will be disabled")

		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	providerMutex.Lock()
	tracerProvider = provider
	providerMutex.Unlock()

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("OpenTelemetry tracing initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
	)

	if config.LogsEnabled {
		return initLogs(ctx, config, res)
	}

	return nil
}

func initLogs(ctx context.Context, config *Config, res *resource.Resource) error {
	endpoint := config.LogsEndpoint
	if endpoint == "" {
		endpoint = config.Endpoint
	}

	exporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(endpoint),
		otlploghttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	providerMutex.Lock()
	loggerProvider = provider
	providerMutex.Unlock()

	logger.Tee(otelslog.NewHandler(config.ServiceName, otelslog.WithLoggerProvider(provider)))

	logger.Get(ctx).Info("OpenTelemetry log export initialized", "endpoint", endpoint)

	return nil
}

// Shutdown flushes and stops the providers installed by Initialize, if any.
func Shutdown(ctx context.Context) error {
	providerMutex.Lock()
	traces, logs := tracerProvider, loggerProvider
	tracerProvider, loggerProvider = nil, nil
	providerMutex.Unlock()

	var errs []error

	if traces != nil {
		logger.Get(ctx).Debug("Shutting down OpenTelemetry tracer provider")

		errs = append(errs, traces.Shutdown(ctx))
	}

	if logs != nil {
		errs = append(errs, logs.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
