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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func resetGlobalState() {
	enabled.Store(false)
	sigaTracerProvider.Store(nil)
	core.TracingHTTPTransport = nil
	otel.SetTracerProvider(noop.NewTracerProvider())
}

func TestSetupTracing(t *testing.T) {
	t.Run("disabled when endpoint is empty", func(t *testing.T) {
		resetGlobalState()
		t.Cleanup(resetGlobalState)

		shutdown, err := setupTracing(Config{})

		require.NoError(t, err)
		assert.False(t, Enabled())
		assert.Nil(t, sigaTracerProvider.Load())
		assert.Nil(t, core.TracingHTTPTransport)
		assert.NoError(t, shutdown(context.Background()))
	})
	t.Run("enabled when endpoint is configured", func(t *testing.T) {
		resetGlobalState()
		t.Cleanup(resetGlobalState)

		shutdown, err := setupTracing(Config{Endpoint: "localhost:4318", Insecure: true})

		require.NoError(t, err)
		t.Cleanup(func() { _ = shutdown(context.Background()) })
		assert.True(t, Enabled())
		assert.NotNil(t, sigaTracerProvider.Load())
		require.NotNil(t, core.TracingHTTPTransport)
		assert.NotEqual(t, http.DefaultTransport, core.TracingHTTPTransport(http.DefaultTransport))
	})
	t.Run("global provider of parent application is kept", func(t *testing.T) {
		resetGlobalState()
		parentProvider := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(parentProvider)
		t.Cleanup(func() {
			_ = parentProvider.Shutdown(context.Background())
			resetGlobalState()
		})

		shutdown, err := setupTracing(Config{Endpoint: "localhost:4318", Insecure: true})

		require.NoError(t, err)
		t.Cleanup(func() { _ = shutdown(context.Background()) })
		assert.Same(t, parentProvider, otel.GetTracerProvider())
		assert.NotSame(t, parentProvider, GetTracerProvider())
	})
}

func TestGetTracerProvider(t *testing.T) {
	t.Cleanup(resetGlobalState)
	t.Run("global provider when not set up", func(t *testing.T) {
		sigaTracerProvider.Store(nil)

		assert.Equal(t, otel.GetTracerProvider(), GetTracerProvider())
	})
	t.Run("own provider", func(t *testing.T) {
		provider := sdktrace.NewTracerProvider()
		sigaTracerProvider.Store(provider)

		assert.Same(t, provider, GetTracerProvider())
	})
}

func TestMiddleware(t *testing.T) {
	t.Cleanup(resetGlobalState)
	exporter := tracetest.NewInMemoryExporter()
	sigaTracerProvider.Store(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	server := echo.New()
	server.Use(Middleware())
	var spanInHandler trace.SpanContext
	server.GET("/hashcodecontainers/:containerId", func(c echo.Context) error {
		spanInHandler = trace.SpanContextFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/hashcodecontainers/abc", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /hashcodecontainers/abc", spans[0].Name)
	assert.True(t, spanInHandler.IsValid())
	assert.Equal(t, spans[0].SpanContext.TraceID(), spanInHandler.TraceID())
}

func TestTracingLogrusHook(t *testing.T) {
	hook := &tracingLogrusHook{}
	t.Run("no context", func(t *testing.T) {
		entry := &logrus.Entry{Data: logrus.Fields{}}

		require.NoError(t, hook.Fire(entry))

		assert.NotContains(t, entry.Data, "trace_id")
	})
	t.Run("no span in context", func(t *testing.T) {
		entry := &logrus.Entry{Context: context.Background(), Data: logrus.Fields{}}

		require.NoError(t, hook.Fire(entry))

		assert.NotContains(t, entry.Data, "trace_id")
	})
	t.Run("span in context", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		spanID, _ := trace.SpanIDFromHex("0102030405060708")
		ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))
		entry := &logrus.Entry{Context: ctx, Data: logrus.Fields{}}

		require.NoError(t, hook.Fire(entry))

		assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", entry.Data["trace_id"])
		assert.Equal(t, "0102030405060708", entry.Data["span_id"])
	})
}

func TestEngine(t *testing.T) {
	t.Run("Configure without endpoint", func(t *testing.T) {
		t.Cleanup(resetGlobalState)
		engine := New()

		require.NoError(t, engine.Configure(core.ServerConfig{}))

		assert.False(t, Enabled())
		assert.NoError(t, engine.Shutdown())
	})
	t.Run("Shutdown resets global state", func(t *testing.T) {
		t.Cleanup(resetGlobalState)
		enabled.Store(true)
		sigaTracerProvider.Store(sdktrace.NewTracerProvider())
		core.TracingHTTPTransport = func(rt http.RoundTripper) http.RoundTripper { return rt }

		require.NoError(t, New().Shutdown())

		assert.False(t, Enabled())
		assert.Nil(t, sigaTracerProvider.Load())
		assert.Nil(t, core.TracingHTTPTransport)
	})
	t.Run("Diagnostics", func(t *testing.T) {
		engine := New()
		engine.config = Config{Endpoint: "localhost:4318", Insecure: true}

		results := engine.Diagnostics()

		require.Len(t, results, 4)
		assert.Equal(t, "enabled", results[0].Name())
		assert.Equal(t, true, results[0].Result())
		assert.Equal(t, "localhost:4318", results[1].Result())
		assert.Equal(t, "siga", results[2].Result())
		assert.Equal(t, true, results[3].Result())
	})
}

func TestRegisterAuditLogHook(t *testing.T) {
	original := registerAuditLogHook
	t.Cleanup(func() { registerAuditLogHook = original })
	var registered logrus.Hook
	RegisterAuditLogHook(func(hook logrus.Hook) {
		registered = hook
	})
	hook := &tracingLogrusHook{}

	registerAuditLogHook(hook)

	assert.Same(t, hook, registered)
}
