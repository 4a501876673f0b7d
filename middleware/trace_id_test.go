package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/KOMKZ/go-dealdesk/logger"
)

func TestTraceID_GeneratesWhenAbsent(t *testing.T) {
	engine := gin.New()
	engine.Use(TraceID())
	var seen string
	engine.GET("/t", func(c *gin.Context) {
		seen = GetTraceID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))

	assert.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(TraceIDHeader))
}

func TestTraceID_PropagatesInboundHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(TraceID())
	var fromCtx string
	engine.GET("/t", func(c *gin.Context) {
		fromCtx, _ = c.Request.Context().Value(logger.TraceIDKey).(string)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(TraceIDHeader, "inbound-trace")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "inbound-trace", fromCtx)
	assert.Equal(t, "inbound-trace", w.Header().Get(TraceIDHeader))
}
