// Package middleware provides the gin middleware chain: authentication,
// tenant context, tracing, logging, panic recovery and the response cache
// interceptors.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KOMKZ/go-dealdesk/auth"
	"github.com/KOMKZ/go-dealdesk/httpx"
)

// Context keys set by the Auth middleware
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "user_id"
	OrgIDKey  = "org_id"
)

// Auth validates the bearer token and injects the resolved tenant/user
// context. Every request behind it carries an organization id; key
// construction depends on that.
func Auth(tm auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			httpx.HandleError(c, auth.ErrTokenMissing)
			c.Abort()
			return
		}

		claims, err := tm.Verify(c.Request.Context(), token)
		if err != nil {
			httpx.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(OrgIDKey, claims.OrgID)
		c.Next()
	}
}

// RequireRole rejects requests whose claims lack the role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || !claims.HasRole(role) {
			httpx.HandleError(c, auth.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// GetClaims retrieves the verified claims from the gin context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetOrgID retrieves the tenant id from the gin context
func GetOrgID(c *gin.Context) (string, bool) {
	v, exists := c.Get(OrgIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetUserID retrieves the caller id from the gin context
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
