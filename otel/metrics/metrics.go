package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter metric.Meter

	backendRequestsTotal    metric.Int64Counter
	backendRequestDuration  metric.Float64Histogram
	backendRequestsInFlight metric.Int64UpDownCounter
	postsCreatedTotal       metric.Int64Counter
	previewHandlesLive      metric.Int64UpDownCounter
)

// Init creates the instruments on the global meter provider. Recording
// before Init is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	backendRequestsTotal, err = meter.Int64Counter(
		"backend_requests_total",
		metric.WithDescription("Total number of requests sent to the backend"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create backend_requests_total counter: %w", err)
	}

	backendRequestDuration, err = meter.Float64Histogram(
		"backend_request_duration_seconds",
		metric.WithDescription("Backend request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create backend_request_duration_seconds histogram: %w", err)
	}

	backendRequestsInFlight, err = meter.Int64UpDownCounter(
		"backend_requests_in_flight",
		metric.WithDescription("Number of backend requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create backend_requests_in_flight counter: %w", err)
	}

	postsCreatedTotal, err = meter.Int64Counter(
		"posts_created_total",
		metric.WithDescription("Posts successfully submitted"),
		metric.WithUnit("{post}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create posts_created_total counter: %w", err)
	}

	previewHandlesLive, err = meter.Int64UpDownCounter(
		"preview_handles_live",
		metric.WithDescription("Media preview handles acquired and not yet released"),
		metric.WithUnit("{handle}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create preview_handles_live counter: %w", err)
	}

	return nil
}

// RecordBackendCall records one finished backend request. statusCode is 0
// when the request never got a response.
func RecordBackendCall(ctx context.Context, operation, method string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("http.method", method),
		attribute.Int("http.status_code", statusCode),
	)

	if backendRequestsTotal != nil {
		backendRequestsTotal.Add(ctx, 1, attrs)
	}
	if backendRequestDuration != nil {
		backendRequestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func IncrementInFlightRequests(ctx context.Context, operation string) {
	if backendRequestsInFlight != nil {
		backendRequestsInFlight.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

func DecrementInFlightRequests(ctx context.Context, operation string) {
	if backendRequestsInFlight != nil {
		backendRequestsInFlight.Add(ctx, -1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

func RecordPostCreated(ctx context.Context, mediaType string) {
	if postsCreatedTotal != nil {
		postsCreatedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("media_type", mediaType)))
	}
}

// AddLivePreviews moves the live preview handle gauge by delta.
func AddLivePreviews(ctx context.Context, delta int64) {
	if previewHandlesLive != nil {
		previewHandlesLive.Add(ctx, delta)
	}
}
