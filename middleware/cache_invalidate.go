package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/logger"
)

// CacheInvalidate write-path interceptor for mutating routes.
//
// The wrapped handler runs first, in full. Only when it reports success
// (2xx) are the operation's declared patterns expanded for the request's
// tenant and evicted — every pattern is attempted even if one fails, and a
// failed eviction never fails the request: the mutation already committed,
// and TTL expiry bounds the resulting staleness window.
func CacheInvalidate(client *cache.Client, policy *cache.Policy, registry *cache.Registry, operation string, log *logger.ModuleLogger) gin.HandlerFunc {
	if log == nil {
		log = logger.Get("cache")
	}
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			// handler failed, nothing changed, stale entries are impossible
			return
		}
		if !policy.Enabled {
			return
		}

		orgID, ok := GetOrgID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		for _, pattern := range registry.Patterns(operation) {
			expanded := cache.ExpandPattern(policy.Namespace, pattern, orgID)
			deleted := client.DeleteMatching(ctx, expanded)
			log.DebugCtx(ctx, "cache invalidated",
				zap.String("operation", operation),
				zap.String("pattern", expanded),
				zap.Int("deleted", deleted))
		}
	}
}
