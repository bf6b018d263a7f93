package utils

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceEndpointStep starts a span for a named step inside an endpoint handler
func TraceEndpointStep(ctx context.Context, stepName string, attributes map[string]interface{}) (context.Context, trace.Span) {
	stepAttributes := map[string]interface{}{
		"step.name": stepName,
		"step.type": "endpoint_operation",
	}
	for k, v := range attributes {
		stepAttributes[k] = v
	}

	otelAttrs := make([]attribute.KeyValue, 0, len(stepAttributes))
	for k, v := range stepAttributes {
		otelAttrs = append(otelAttrs, toAttribute(k, v))
	}

	return otel.Tracer("app-sinistro").Start(ctx, "endpoint.step."+stepName, trace.WithAttributes(otelAttrs...))
}

// TraceInputParsing traces input parsing operations
func TraceInputParsing(ctx context.Context, inputType string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "parse_input", map[string]interface{}{
		"input.type": inputType,
	})
}

// TraceDatabaseFind traces a find against a collection
func TraceDatabaseFind(ctx context.Context, collection, filter string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "db_find", map[string]interface{}{
		"db.collection": collection,
		"db.filter":     filter,
		"db.system":     "mongodb",
	})
}

// TraceDatabaseUpdate traces an update against a collection
func TraceDatabaseUpdate(ctx context.Context, collection, filter string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "db_update", map[string]interface{}{
		"db.collection": collection,
		"db.filter":     filter,
		"db.system":     "mongodb",
	})
}

// TraceCacheGet traces a cache read
func TraceCacheGet(ctx context.Context, cacheKey string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "cache_get", map[string]interface{}{
		"cache.key": cacheKey,
	})
}

// TraceBusinessLogic traces a pure business-logic step
func TraceBusinessLogic(ctx context.Context, logicType string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "business_logic", map[string]interface{}{
		"logic.type": logicType,
	})
}

// TraceExternalService traces a call to an external collaborator
func TraceExternalService(ctx context.Context, serviceName, operation string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "external_service", map[string]interface{}{
		"service.name":      serviceName,
		"service.operation": operation,
	})
}

// AddTimingToSpan records elapsed time on a span
func AddTimingToSpan(span trace.Span, startTime time.Time) {
	duration := time.Since(startTime)
	span.SetAttributes(
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("duration", duration.String()),
	)
}

// RecordErrorInSpan records an error in a span with additional context
func RecordErrorInSpan(span trace.Span, err error, context map[string]interface{}) {
	span.RecordError(err)
	for k, v := range context {
		span.SetAttributes(toAttribute(k, v))
	}
}

func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch val := value.(type) {
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case bool:
		return attribute.Bool(key, val)
	case float64:
		return attribute.Float64(key, val)
	default:
		return attribute.String(key, "unknown_type")
	}
}
