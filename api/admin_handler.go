package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/logger"
	"github.com/KOMKZ/go-dealdesk/middleware"
)

// AdminCacheHandler operational cache endpoints, admin role only
type AdminCacheHandler struct {
	cache  *cache.Client
	policy *cache.Policy
	log    *logger.ModuleLogger
}

func NewAdminCacheHandler(client *cache.Client, policy *cache.Policy, log *logger.ModuleLogger) *AdminCacheHandler {
	if log == nil {
		log = logger.Get("api")
	}
	return &AdminCacheHandler{cache: client, policy: policy, log: log}
}

// Flush drops cached responses. Default scope is the caller's organization;
// scope=all empties the whole namespace.
func (h *AdminCacheHandler) Flush(c *gin.Context) {
	ctx := c.Request.Context()
	orgID, _ := middleware.GetOrgID(c)
	userID, _ := middleware.GetUserID(c)

	if c.Query("scope") == "all" {
		ok := h.cache.Flush(ctx)
		h.log.InfoCtx(ctx, "cache flush requested",
			zap.String("scope", "all"),
			zap.String("user_id", userID),
			zap.Bool("completed", ok),
		)
		httpx.OkJson(c, gin.H{"scope": "all", "completed": ok})
		return
	}

	pattern := h.policy.Namespace + ":*:" + orgID + ":*"
	deleted := h.cache.DeleteMatching(ctx, pattern)
	h.log.InfoCtx(ctx, "cache flush requested",
		zap.String("scope", "org"),
		zap.String("org_id", orgID),
		zap.String("user_id", userID),
		zap.Int("deleted", deleted),
	)
	httpx.OkJson(c, gin.H{"scope": "org", "deleted": deleted})
}
