package middleware

import (
	"bytes"
	"encoding/json"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/logger"
)

const (
	// CacheStatusHeader response annotation for observability and tests
	CacheStatusHeader = "X-Cache"

	// CacheStatusHit served from the store without invoking the handler
	CacheStatusHit = "HIT"

	// CacheStatusMiss handler invoked; result stored when eligible
	CacheStatusMiss = "MISS"
)

// RouteCache per-route read-through configuration, declared at registration
type RouteCache struct {
	// Category logical key segment for this route's responses (e.g. "deals")
	Category string

	// TTL per-route override; zero selects the policy default
	TTL time.Duration

	// CallerSensitive marks routes whose output varies by caller; the caller
	// id then becomes part of the key so two users never share an entry
	CallerSensitive bool
}

// cachedResponse stored value: the exact response the handler produced
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CacheRead read-through interceptor for retrieval/listing routes.
//
// Eligibility precedes any store interaction: the method must be in the
// policy allow-list and the path outside the exclusion set. The key always
// starts with the tenant id; requests without a resolved tenant bypass the
// cache rather than risk a shared entry. Only 2xx responses within the size
// threshold are stored; error responses are never cached.
func CacheRead(client *cache.Client, policy *cache.Policy, route RouteCache, log *logger.ModuleLogger) gin.HandlerFunc {
	if log == nil {
		log = logger.Get("cache")
	}
	return func(c *gin.Context) {
		if !policy.Enabled ||
			!policy.MethodCacheable(c.Request.Method) ||
			policy.PathExcluded(c.Request.URL.Path) {
			c.Next()
			return
		}

		orgID, ok := GetOrgID(c)
		if !ok {
			c.Next()
			return
		}

		key, err := buildRequestKey(policy.Namespace, route, orgID, c)
		if err != nil {
			// programming error in key derivation; serve uncached, loudly
			log.ErrorCtx(c.Request.Context(), "cache key derivation failed",
				zap.String("category", route.Category), zap.Error(err))
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if data, ok := client.Get(ctx, key); ok {
			var stored cachedResponse
			if err := json.Unmarshal(data, &stored); err == nil {
				c.Header(CacheStatusHeader, CacheStatusHit)
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			// corrupt entry: treat as miss and let the fresh write repair it
			log.WarnCtx(ctx, "corrupt cache entry, treating as miss", zap.String("key", key))
		}

		c.Header(CacheStatusHeader, CacheStatusMiss)
		capture := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := capture.Status()
		if status < 200 || status >= 300 {
			return
		}
		if capture.body.Len() > policy.MaxBodyBytes {
			log.DebugCtx(ctx, "response exceeds size threshold, not cached",
				zap.String("key", key), zap.Int("size", capture.body.Len()))
			return
		}

		stored := cachedResponse{
			Status:      status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
		}
		data, err := json.Marshal(stored)
		if err != nil {
			log.WarnCtx(ctx, "cache serialize failed", zap.String("key", key), zap.Error(err))
			return
		}
		client.Set(ctx, key, data, policy.TTLFor(route.TTL))
	}
}

// buildRequestKey derives the cache key from every dimension that affects
// the response: tenant, optionally the caller, the route path parameters
// (detail routes must not share an entry across ids), and the full
// canonicalized query string (filters and pagination bounds included).
func buildRequestKey(namespace string, route RouteCache, orgID string, c *gin.Context) (string, error) {
	qualifiers := []any{orgID}

	if route.CallerSensitive {
		userID, ok := GetUserID(c)
		if !ok {
			qualifiers = append(qualifiers, nil)
		} else {
			qualifiers = append(qualifiers, userID)
		}
	}

	for _, p := range c.Params {
		qualifiers = append(qualifiers, p.Value)
	}

	if query := canonicalQuery(c.Request.URL.Query()); query != "" {
		qualifiers = append(qualifiers, query)
	} else {
		qualifiers = append(qualifiers, nil)
	}

	return cache.BuildKey(namespace, route.Category, qualifiers...)
}

// canonicalQuery renders query parameters in a fixed order so that
// semantically identical requests derive identical keys regardless of
// parameter ordering on the wire.
func canonicalQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		vs := append([]string(nil), values[k]...)
		sort.Strings(vs)
		for _, v := range vs {
			if i > 0 || sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}

// bodyCaptureWriter tees the response body so a successful result can be
// stored after the handler completes.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
