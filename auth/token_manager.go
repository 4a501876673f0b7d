// Package auth issues and verifies the JWT access tokens that carry tenant
// and role context. The cache and api layers consume only the resolved
// Claims; credential verification itself lives outside this service.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/KOMKZ/go-dealdesk/errcode"
)

// Business codes within errcode.ModuleAuth (20xxxx)
const (
	ErrCodeTokenMissing = 1
	ErrCodeTokenInvalid = 2
	ErrCodeTokenExpired = 3
	ErrCodeForbidden    = 4
)

var (
	// ErrTokenMissing no token in the request
	ErrTokenMissing = errcode.New(
		errcode.ModuleAuth, ErrCodeTokenMissing,
		"auth", "error.auth.token_missing", "authorization token missing",
		http.StatusUnauthorized,
	)

	// ErrTokenInvalid token failed signature or claim validation
	ErrTokenInvalid = errcode.New(
		errcode.ModuleAuth, ErrCodeTokenInvalid,
		"auth", "error.auth.token_invalid", "authorization token invalid",
		http.StatusUnauthorized,
	)

	// ErrTokenExpired token past its expiry
	ErrTokenExpired = errcode.New(
		errcode.ModuleAuth, ErrCodeTokenExpired,
		"auth", "error.auth.token_expired", "authorization token expired",
		http.StatusUnauthorized,
	)

	// ErrForbidden authenticated but lacking the required role
	ErrForbidden = errcode.New(
		errcode.ModuleAuth, ErrCodeForbidden,
		"auth", "error.auth.forbidden", "insufficient role",
		http.StatusForbidden,
	)
)

// Claims token payload: the resolved tenant and caller identity every
// request carries. OrgID is the tenant isolation boundary.
type Claims struct {
	UserID string   `json:"uid"`
	OrgID  string   `json:"org"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the role
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenManager issues and verifies access tokens
type TokenManager interface {
	Issue(ctx context.Context, userID, orgID string, roles []string) (string, error)
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Config token manager configuration
type Config struct {
	// Secret HS256 signing secret
	Secret string `mapstructure:"secret"`

	// Issuer "iss" claim value
	Issuer string `mapstructure:"issuer"`

	// AccessTTL access token lifetime
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

// ApplyDefaults fills zero-value fields
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "dealdesk"
	}
	if c.AccessTTL <= 0 {
		c.AccessTTL = 2 * time.Hour
	}
}

type hs256Manager struct {
	cfg Config
}

// NewTokenManager creates an HS256 token manager
func NewTokenManager(cfg Config) TokenManager {
	cfg.ApplyDefaults()
	return &hs256Manager{cfg: cfg}
}

// Issue signs a new access token
func (m *hs256Manager) Issue(ctx context.Context, userID, orgID string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		OrgID:  orgID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    m.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", ErrTokenInvalid.Wrap(err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims
func (m *hs256Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid.WithMsgf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	}, jwt.WithIssuer(m.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired.Wrap(err)
		}
		return nil, ErrTokenInvalid.Wrap(err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
