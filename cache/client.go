package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KOMKZ/go-dealdesk/logger"
)

// defaultOpTimeout bound on any single store interaction
const defaultOpTimeout = 150 * time.Millisecond

// Client is the sole I/O boundary of the cache subsystem: a fail-open wrapper
// over a Store. Every operation runs under a bounded timeout that holds even
// when the caller's context is already cancelled, and any store-side failure
// degrades to a neutral "absent"/"no-op" result. Caching is an optimization,
// never a correctness dependency: a broken store must cost latency only.
type Client struct {
	store   Store
	timeout time.Duration
	log     *logger.ModuleLogger
}

// NewClient wraps store with fail-open semantics. opTimeout <= 0 selects the
// default bound.
func NewClient(store Store, opTimeout time.Duration, log *logger.ModuleLogger) *Client {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	if log == nil {
		log = logger.Nop("cache")
	}
	return &Client{store: store, timeout: opTimeout, log: log}
}

// Store exposes the wrapped backend (admin surface, tests)
func (c *Client) Store() Store {
	return c.store
}

// opContext detaches from caller cancellation, then applies the client's own
// bound. A request that gives up must not leave a cache write half-applied
// nor block shutdown; the store call always sees exactly one deadline.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
}

// Get returns the stored value and true on a hit. Misses, timeouts and store
// failures all come back as (nil, false).
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	value, err := c.store.Get(opCtx, key)
	if err != nil {
		if !ErrCacheMiss.Is(err) {
			c.log.WarnCtx(ctx, "cache get failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return value, true
}

// Set writes best-effort and reports whether the write landed. A false return
// never fails the enclosing request.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	if err := c.store.Set(opCtx, key, value, ttl); err != nil {
		c.log.WarnCtx(ctx, "cache set failed, skipping",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// DeleteMatching evicts keys matching the glob pattern, returning how many
// were removed. Failures are logged and reported as zero; the caller's
// mutation already committed, and TTL expiry recovers the stale entries.
func (c *Client) DeleteMatching(ctx context.Context, pattern string) int {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	deleted, err := c.store.DeleteMatching(opCtx, pattern)
	if err != nil {
		c.log.WarnCtx(ctx, "cache invalidation failed, relying on ttl expiry",
			zap.String("pattern", pattern),
			zap.Int("deleted_before_failure", deleted),
			zap.Error(err))
	}
	return deleted
}

// Flush evicts the whole namespace (emergency recovery surface)
func (c *Client) Flush(ctx context.Context) bool {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	if err := c.store.Flush(opCtx); err != nil {
		c.log.ErrorCtx(ctx, "cache flush failed", zap.Error(err))
		return false
	}
	c.log.InfoCtx(ctx, "cache flushed", zap.String("store", c.store.Name()))
	return true
}
