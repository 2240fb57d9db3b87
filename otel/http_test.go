package otel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder
}

func TestInjectTraceHeaders(t *testing.T) {
	setupTestTracer(t)

	ctx, span := otel.Tracer("bm-social-test").Start(context.Background(), "submit-post")
	defer span.End()

	headers := InjectTraceHeaders(ctx, nil)
	assert.NotEmpty(t, headers["traceparent"])

	req := httptest.NewRequest(http.MethodGet, "/api/posts/me", nil)
	InjectTraceHeadersIntoRequest(ctx, req)
	assert.Equal(t, headers["traceparent"], req.Header.Get("traceparent"))
}

func TestNewTracedRestyClientPropagates(t *testing.T) {
	setupTestTracer(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Received-Traceparent", r.Header.Get("traceparent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, span := otel.Tracer("bm-social-test").Start(context.Background(), "fetch-my-posts")
	defer span.End()

	resp, err := NewTracedRestyClient(server.URL).R().SetContext(ctx).Get("/api/posts/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.NotEmpty(t, resp.Header().Get("X-Received-Traceparent"))
}

func TestStartHTTPSpan(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		err        error
		expected   codes.Code
	}{
		{"success", http.StatusOK, nil, codes.Ok},
		{"server rejected", http.StatusConflict, nil, codes.Error},
		{"transport failure", 0, assert.AnError, codes.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := setupTestTracer(t)

			_, finish := StartHTTPSpan(context.Background(), "bm-social-test", "api", "delete-post", http.MethodDelete, "http://localhost:8080", "/api/posts/3")
			finish(tc.statusCode, tc.err)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, "HTTP.api.delete-post", spans[0].Name())
			assert.Equal(t, tc.expected, spans[0].Status().Code)
		})
	}
}
