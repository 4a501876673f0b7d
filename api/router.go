package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KOMKZ/go-dealdesk/auth"
	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/health"
	"github.com/KOMKZ/go-dealdesk/httpx"
	"github.com/KOMKZ/go-dealdesk/logger"
	"github.com/KOMKZ/go-dealdesk/middleware"
	"github.com/KOMKZ/go-dealdesk/store"
)

// Cache invalidation operations. Each write route declares one; the registry
// maps it to the key patterns that become stale when the write commits.
const (
	OpDealWrite         = "deal.write"
	OpClientWrite       = "client.write"
	OpTaskWrite         = "task.write"
	OpDocumentWrite     = "document.write"
	OpPresentationWrite = "presentation.write"
)

// RouterConfig collaborators for route registration
type RouterConfig struct {
	DB           *gorm.DB
	Cache        *cache.Client
	Policy       *cache.Policy
	TokenManager auth.TokenManager

	// AdminRole role required for the admin group and for deletes (default
	// "admin"); WriteRole guards creates and updates (default "member")
	AdminRole string
	WriteRole string

	// DashboardTTL freshness window for the summary route (default 30s,
	// shorter than the policy default because the counters move often)
	DashboardTTL time.Duration

	// Health optional dependency probes for /healthz; when nil the endpoint
	// reports a static ok
	Health *health.Aggregator
}

// NewInvalidationRegistry declares which cached categories each write
// operation staleness. Client writes also evict deals: deal rows embed the
// client id, so a renamed client must not serve stale deal listings.
func NewInvalidationRegistry(log *logger.ModuleLogger) *cache.Registry {
	reg := cache.NewRegistry(log)
	reg.Register(OpDealWrite, "deals:{org}:*", "dashboard:{org}:*")
	reg.Register(OpClientWrite, "clients:{org}:*", "deals:{org}:*", "dashboard:{org}:*")
	reg.Register(OpTaskWrite, "tasks:{org}:*", "dashboard:{org}:*")
	reg.Register(OpDocumentWrite, "documents:{org}:*", "dashboard:{org}:*")
	reg.Register(OpPresentationWrite, "presentations:{org}:*", "dashboard:{org}:*")
	return reg
}

// NewRouter assembles the full HTTP surface: global middleware chain,
// authenticated v1 routes with per-route cache declarations, and /healthz.
func NewRouter(cfg RouterConfig) *gin.Engine {
	apiLog := logger.Get("api")
	cacheLog := logger.Get("cache")

	if cfg.AdminRole == "" {
		cfg.AdminRole = "admin"
	}
	if cfg.WriteRole == "" {
		cfg.WriteRole = "member"
	}
	if cfg.DashboardTTL <= 0 {
		cfg.DashboardTTL = 30 * time.Second
	}

	registry := NewInvalidationRegistry(cacheLog)

	deals := NewDealHandler(store.NewDealStore(cfg.DB))
	clients := NewClientHandler(store.NewClientStore(cfg.DB))
	tasks := NewTaskHandler(store.NewTaskStore(cfg.DB))
	docs := NewDocumentHandler(store.NewDocumentStore(cfg.DB))
	decks := NewPresentationHandler(store.NewPresentationStore(cfg.DB))
	dash := NewDashboardHandler(store.NewDashboardStore(cfg.DB))
	admin := NewAdminCacheHandler(cfg.Cache, cfg.Policy, apiLog)

	r := gin.New()
	r.Use(
		middleware.TraceID(),
		middleware.RequestLog(apiLog, middleware.RequestLogConfig{
			SkipPaths: []string{"/healthz"},
		}),
		middleware.Recovery(apiLog),
	)
	r.NoRoute(httpx.NoRouteHandler())
	r.NoMethod(httpx.NoMethodHandler())

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		resp := cfg.Health.Check(c.Request.Context())
		status := http.StatusOK
		if resp.Status == health.StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	})

	read := func(category string, ttl time.Duration, callerSensitive bool) gin.HandlerFunc {
		return middleware.CacheRead(cfg.Cache, cfg.Policy, middleware.RouteCache{
			Category:        category,
			TTL:             ttl,
			CallerSensitive: callerSensitive,
		}, cacheLog)
	}
	invalidate := func(operation string) gin.HandlerFunc {
		return middleware.CacheInvalidate(cfg.Cache, cfg.Policy, registry, operation, cacheLog)
	}
	// mutations are role gated: creating or updating takes the write role,
	// deleting takes the admin role
	write := middleware.RequireRole(cfg.WriteRole)
	remove := middleware.RequireRole(cfg.AdminRole)

	v1 := r.Group("/api/v1", middleware.Auth(cfg.TokenManager))

	{
		g := v1.Group("/deals")
		g.GET("", read("deals", 0, false), deals.List)
		g.GET("/:id", read("deals", 0, false), deals.Get)
		g.POST("", write, invalidate(OpDealWrite), deals.Create)
		g.PUT("/:id", write, invalidate(OpDealWrite), deals.Update)
		g.DELETE("/:id", remove, invalidate(OpDealWrite), deals.Delete)
	}
	{
		g := v1.Group("/clients")
		g.GET("", read("clients", 0, false), clients.List)
		g.GET("/:id", read("clients", 0, false), clients.Get)
		g.POST("", write, invalidate(OpClientWrite), clients.Create)
		g.PUT("/:id", write, invalidate(OpClientWrite), clients.Update)
		g.DELETE("/:id", remove, invalidate(OpClientWrite), clients.Delete)
	}
	{
		// task listings vary by caller (own tasks + unassigned pool)
		g := v1.Group("/tasks")
		g.GET("", read("tasks", 0, true), tasks.List)
		g.GET("/:id", read("tasks", 0, false), tasks.Get)
		g.POST("", write, invalidate(OpTaskWrite), tasks.Create)
		g.PUT("/:id", write, invalidate(OpTaskWrite), tasks.Update)
		g.DELETE("/:id", remove, invalidate(OpTaskWrite), tasks.Delete)
	}
	{
		g := v1.Group("/documents")
		g.GET("", read("documents", 0, false), docs.List)
		g.GET("/:id", read("documents", 0, false), docs.Get)
		g.POST("", write, invalidate(OpDocumentWrite), docs.Create)
		g.PUT("/:id", write, invalidate(OpDocumentWrite), docs.Update)
		g.DELETE("/:id", remove, invalidate(OpDocumentWrite), docs.Delete)
	}
	{
		g := v1.Group("/presentations")
		g.GET("", read("presentations", 0, false), decks.List)
		g.GET("/:id", read("presentations", 0, false), decks.Get)
		g.POST("", write, invalidate(OpPresentationWrite), decks.Create)
		g.PUT("/:id", write, invalidate(OpPresentationWrite), decks.Update)
		g.DELETE("/:id", remove, invalidate(OpPresentationWrite), decks.Delete)
	}

	v1.GET("/dashboard/summary", read("dashboard", cfg.DashboardTTL, false), dash.Summary)

	adminGroup := v1.Group("/admin", middleware.RequireRole(cfg.AdminRole))
	adminGroup.POST("/cache/flush", admin.Flush)

	return r
}
