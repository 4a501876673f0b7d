package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/logger"
)

// Recovery catches handler panics, logs the stack and returns a uniform 500
// without leaking internals to the client.
func Recovery(log *logger.ModuleLogger) gin.HandlerFunc {
	if log == nil {
		log = logger.Get("gin")
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.ErrorCtx(c.Request.Context(), "panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, httpx.Response{
					Code: 500,
					Msg:  "internal server error",
				})
			}
		}()
		c.Next()
	}
}
