package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey     contextKey = "logger"
	requestIDKey  contextKey = "request_id"
	operatorIDKey contextKey = "operator_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID and returns the enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithOperatorID stores the operator (user) ID and returns the enriched logger
func WithOperatorID(ctx context.Context, logger *zap.Logger, operatorID int64) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, operatorIDKey, operatorID)
	enriched := logger.With(zap.Int64("operator_id", operatorID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOperatorID retrieves the operator ID from context, or 0
func GetOperatorID(ctx context.Context) int64 {
	if id, ok := ctx.Value(operatorIDKey).(int64); ok {
		return id
	}
	return 0
}

// traceFields returns trace_id/span_id when ctx carries a valid span
func traceFields(ctx context.Context) []zap.Field {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

// L returns the context logger enriched with trace and request identifiers.
//
//	logger.L(ctx).Info("sale finalized", zap.Int64("sale_id", id))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	fields := traceFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
