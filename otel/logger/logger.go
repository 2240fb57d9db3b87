package logger

import (
	"context"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/utils/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InfoCtx logs an info message with trace context
func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logWithTrace(ctx, enums.LogLevelInfo, msg, fields...)
}

// ErrorCtx logs an error message with trace context
func ErrorCtx(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logWithTrace(ctx, enums.LogLevelError, msg, fields...)
}

// WarnCtx logs a warning message with trace context
func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logWithTrace(ctx, enums.LogLevelWarn, msg, fields...)
}

// DebugCtx logs a debug message with trace context
func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	logWithTrace(ctx, enums.LogLevelDebug, msg, fields...)
}

func logWithTrace(ctx context.Context, level string, msg string, fields ...zap.Field) {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		fields = append(fields,
			zap.String("trace_id", spanContext.TraceID().String()),
			zap.String("span_id", spanContext.SpanID().String()),
		)
	}

	switch level {
	case enums.LogLevelError:
		logger.LogError(msg, fields...)
	case enums.LogLevelWarn:
		logger.LogWarn(msg, fields...)
	case enums.LogLevelDebug:
		logger.LogDebug(msg, fields...)
	default:
		logger.LogInfo(msg, fields...)
	}
}

// GetTraceID extracts the trace ID from context
func GetTraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return spanContext.TraceID().String()
	}
	return ""
}
