// Package cache implements the response cache core: deterministic key
// construction, a fail-open store client over redis or memory backends,
// glob-pattern bulk invalidation and the process-wide cache policy.
package cache

import (
	"context"
	"strings"
	"time"
)

// Store cache storage backend.
// Get returns ErrCacheMiss when the key is absent. DeleteMatching removes all
// keys matching a glob pattern and reports how many were removed; a pattern
// with zero matches is a no-op. All single-key operations are expected to be
// atomic on the backend; DeleteMatching is eventually complete, not atomic
// across the whole pattern.
type Store interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMatching(ctx context.Context, pattern string) (int, error)
	Flush(ctx context.Context) error
	Close() error
}

// matchGlob reports whether key matches a pattern where '*' matches any run
// of characters (including ':'). Mirrors redis KEYS/SCAN '*' semantics for
// the subset of glob syntax the invalidation tables use.
func matchGlob(pattern, key string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == key
	}

	parts := strings.Split(pattern, "*")

	// anchored prefix
	if parts[0] != "" {
		if !strings.HasPrefix(key, parts[0]) {
			return false
		}
		key = key[len(parts[0]):]
	}

	// anchored suffix
	last := parts[len(parts)-1]
	if last != "" {
		if !strings.HasSuffix(key, last) {
			return false
		}
		key = key[:len(key)-len(last)]
	}

	// middle fragments must appear in order
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(key, part)
		if idx < 0 {
			return false
		}
		key = key[idx+len(part):]
	}
	return true
}
