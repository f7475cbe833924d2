// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func restoreGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetup_WritesSpans(t *testing.T) {
	restoreGlobalProvider(t)

	var buf bytes.Buffer
	shutdown, err := Setup(ServiceName, "test", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "dashboard.build")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "dashboard.build")
	assert.Contains(t, buf.String(), ServiceName)
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	restoreGlobalProvider(t)

	shutdown, err := Setup(ServiceName, "test", nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(ServiceName, next, otelhttp.WithTracerProvider(tp))

	for _, path := range []string{"/stats/cheapest", "/health"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 1, "health checks are not traced")
	assert.Equal(t, "HTTP GET /stats/cheapest", spans[0].Name())
}
