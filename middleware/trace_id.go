package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/KOMKZ/go-dealdesk/logger"
)

const (
	// TraceIDGinKey key under which the trace id is stored in gin.Context
	TraceIDGinKey = "trace_id"

	// TraceIDHeader HTTP header carrying the trace id
	TraceIDHeader = "X-Trace-ID"
)

// TraceID extracts or generates a per-request trace id and injects it into
// both gin.Context and the request context (where the logger picks it up).
// When an OpenTelemetry span is active its trace id wins.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		var traceID string

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		} else {
			traceID = c.GetHeader(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}
		}

		ctx := context.WithValue(c.Request.Context(), logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(TraceIDGinKey, traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetTraceID retrieves the trace id from gin.Context
func GetTraceID(c *gin.Context) string {
	v, exists := c.Get(TraceIDGinKey)
	if !exists {
		return ""
	}
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}
