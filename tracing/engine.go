/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */


package tracing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/bridges/otellogrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const (
	moduleName         = "Tracing"
	defaultServiceName = "siga"
)

var enabled = atomic.NewBool(false)

// sigaTracerProvider is used instead of the global provider, which is owned by the parent application when embedded.
var sigaTracerProvider = atomic.NewPointer[trace.TracerProvider](nil)

// registerAuditLogHook registers a logrus hook with the audit logger.
// The audit package sets it on init, since it imports this package.
var registerAuditLogHook = func(logrus.Hook) {}

// RegisterAuditLogHook sets the function that registers a logrus hook with the audit logger.
func RegisterAuditLogHook(fn func(hook logrus.Hook)) {
	registerAuditLogHook = fn
}

// New creates a new tracing engine.
func New() *Engine {
	return &Engine{config: DefaultConfig()}
}

// Engine manages OpenTelemetry tracing. It must be registered first,
// so tracing is set up before other engines create their HTTP clients and is shut down last.
type Engine struct {
	config   Config
	shutdown func(context.Context) error
}

func (e *Engine) Name() string {
	return moduleName
}

func (e *Engine) Config() interface{} {
	return &e.config
}

// Configure sets up the exporters when an endpoint is configured.
func (e *Engine) Configure(_ core.ServerConfig) error {
	shutdown, err := setupTracing(e.config)
	if err != nil {
		return fmt.Errorf("failed to setup tracing: %w", err)
	}
	e.shutdown = shutdown
	return nil
}

func (e *Engine) Start() error {
	return nil
}

// Shutdown flushes remaining spans and logs. Registered logrus hooks become no-ops afterwards.
func (e *Engine) Shutdown() error {
	enabled.Store(false)
	sigaTracerProvider.Store(nil)
	core.TracingHTTPTransport = nil
	if e.shutdown != nil {
		return e.shutdown(context.Background())
	}
	return nil
}

// Diagnostics returns the tracing configuration.
func (e *Engine) Diagnostics() []core.DiagnosticResult {
	return []core.DiagnosticResult{
		core.GenericDiagnosticResult{Title: "enabled", Outcome: e.config.Endpoint != ""},
		core.GenericDiagnosticResult{Title: "endpoint", Outcome: e.config.Endpoint},
		core.GenericDiagnosticResult{Title: "service_name", Outcome: e.resolvedServiceName()},
		core.GenericDiagnosticResult{Title: "insecure", Outcome: e.config.Insecure},
	}
}

func (e *Engine) resolvedServiceName() string {
	if e.config.ServiceName != "" {
		return e.config.ServiceName
	}
	return defaultServiceName
}

// Enabled returns true if OpenTelemetry tracing is configured.
func Enabled() bool {
	return enabled.Load()
}

// GetTracerProvider returns the TracerProvider spans of the gateway should be created with.
func GetTracerProvider() oteltrace.TracerProvider {
	if provider := sigaTracerProvider.Load(); provider != nil {
		return provider
	}
	return otel.GetTracerProvider()
}

// Middleware returns echo middleware that starts a server span for every request,
// continuing the trace of the caller if it propagated one.
func Middleware() echo.MiddlewareFunc {
	return echo.WrapMiddleware(otelhttp.NewMiddleware("siga-http",
		otelhttp.WithTracerProvider(GetTracerProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		})))
}

// setupTracing initializes the trace and log exporters. Logs are sent to both stdout and the OTLP endpoint.
// The returned function shuts down the exporters.
func setupTracing(cfg Config) (func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		logrus.Info("Tracing disabled (no endpoint configured)")
		return func(context.Context) error { return nil }, nil
	}
	enabled.Store(true)

	ctx := context.Background()
	var shutdownFuncs []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs error
		for _, fn := range shutdownFuncs {
			errs = errors.Join(errs, fn(ctx))
		}
		return errs
	}
	handleErr := func(err error) (func(context.Context) error, error) {
		enabled.Store(false)
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
		return nil, err
	}

	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logrus.WithError(err).Error("OpenTelemetry SDK error")
	}))
	// W3C Trace Context + Baggage
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(core.Version()),
		),
	)
	if err != nil {
		return handleErr(err)
	}

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
	}
	traceExporter, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return handleErr(err)
	}
	shutdownFuncs = append(shutdownFuncs, traceExporter.Shutdown)
	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	sigaTracerProvider.Store(tracerProvider)
	if _, hasParentProvider := otel.GetTracerProvider().(*trace.TracerProvider); !hasParentProvider {
		otel.SetTracerProvider(tracerProvider)
	}

	// Mobile-ID and Smart-ID calls
	core.TracingHTTPTransport = func(transport http.RoundTripper) http.RoundTripper {
		return otelhttp.NewTransport(transport,
			otelhttp.WithTracerProvider(tracerProvider),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "outbound: " + r.Method + " " + r.URL.Host + r.URL.Path
			}))
	}

	logOpts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		logOpts = append(logOpts, otlploghttp.WithInsecure())
	}
	logExporter, err := otlploghttp.New(ctx, logOpts...)
	if err != nil {
		return handleErr(err)
	}
	shutdownFuncs = append(shutdownFuncs, logExporter.Shutdown)
	loggerProvider := log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(logExporter)),
		log.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, loggerProvider.Shutdown)

	traceContextHook := &tracingLogrusHook{}
	otelHook := otellogrus.NewHook(serviceName, otellogrus.WithLoggerProvider(loggerProvider))
	logrus.AddHook(traceContextHook)
	logrus.AddHook(otelHook)
	registerAuditLogHook(traceContextHook)
	registerAuditLogHook(otelHook)

	logrus.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"service":  serviceName,
	}).Info("OpenTelemetry tracing initialized")
	return shutdown, nil
}

// tracingLogrusHook adds the trace and span ID of the entry's context to log entries.
type tracingLogrusHook struct{}

func (h *tracingLogrusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *tracingLogrusHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}
	spanCtx := oteltrace.SpanFromContext(entry.Context).SpanContext()
	if !spanCtx.IsValid() {
		return nil
	}
	entry.Data["trace_id"] = spanCtx.TraceID().String()
	entry.Data["span_id"] = spanCtx.SpanID().String()
	return nil
}
