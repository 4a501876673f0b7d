package cache

import (
	"strings"
	"time"
)

// Policy process-wide cache-control configuration. Constructed once at
// startup from the config file and shared read-only by every interceptor;
// changing it requires a restart.
type Policy struct {
	// Enabled master switch; when false every request bypasses the cache
	Enabled bool `mapstructure:"enabled"`

	// Namespace top-level key prefix segment (glossary "namespace")
	Namespace string `mapstructure:"namespace"`

	// DefaultTTL applied when a route declares no override
	DefaultTTL time.Duration `mapstructure:"default_ttl"`

	// Methods HTTP methods eligible for read-through caching
	Methods []string `mapstructure:"methods"`

	// ExcludedPaths path prefixes that bypass the cache entirely
	// (health, docs, metrics, streaming endpoints)
	ExcludedPaths []string `mapstructure:"excluded_paths"`

	// MaxBodyBytes responses larger than this are served but never stored
	MaxBodyBytes int `mapstructure:"max_body_bytes"`

	// OpTimeout bound on a single store interaction
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

// ApplyDefaults fills zero-value fields
func (p *Policy) ApplyDefaults() {
	if p.Namespace == "" {
		p.Namespace = "dealdesk"
	}
	if p.DefaultTTL <= 0 {
		p.DefaultTTL = 5 * time.Minute
	}
	if len(p.Methods) == 0 {
		p.Methods = []string{"GET"}
	}
	if len(p.ExcludedPaths) == 0 {
		p.ExcludedPaths = []string{"/healthz", "/swagger", "/metrics", "/ws"}
	}
	if p.MaxBodyBytes <= 0 {
		p.MaxBodyBytes = 1 << 20 // 1 MiB
	}
	if p.OpTimeout <= 0 {
		p.OpTimeout = defaultOpTimeout
	}
}

// MethodCacheable reports whether the HTTP method is in the allow-list
func (p *Policy) MethodCacheable(method string) bool {
	for _, m := range p.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// PathExcluded reports whether the request path falls under an excluded prefix
func (p *Policy) PathExcluded(path string) bool {
	for _, prefix := range p.ExcludedPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// TTLFor resolves a per-route override against the policy default
func (p *Policy) TTLFor(override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return p.DefaultTTL
}
