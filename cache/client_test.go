package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/KOMKZ/go-dealdesk/logger"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	store := NewRedisStore("redis", rc, "dd:")
	return NewClient(store, time.Second, logger.Nop("cache")), mr
}

func TestClient_GetSetRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	assert.True(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	value, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), value)
}

func TestClient_FailOpenOnStoreDown(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.True(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.Close()

	// reads degrade to miss, writes to no-op, invalidation to zero
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, c.Set(ctx, "k2", []byte("v"), time.Minute))
	assert.Zero(t, c.DeleteMatching(ctx, "k*"))
	assert.False(t, c.Flush(ctx))
}

func TestClient_HonorsOwnTimeoutDespiteCallerCancellation(t *testing.T) {
	c, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// cancelled caller context must not abort the store operation
	assert.True(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	value, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), value)
}

func TestClient_DeleteMatchingCount(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	c.Set(ctx, "deals:org1:a", []byte("1"), time.Minute)
	c.Set(ctx, "deals:org1:b", []byte("2"), time.Minute)
	c.Set(ctx, "deals:org2:a", []byte("3"), time.Minute)

	assert.Equal(t, 2, c.DeleteMatching(ctx, "deals:org1:*"))
	assert.Zero(t, c.DeleteMatching(ctx, "deals:org1:*"))

	_, ok := c.Get(ctx, "deals:org2:a")
	assert.True(t, ok)
}

func TestClient_InvalidationFailureIsLogged(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	log, logs := logger.NewObserved("cache", zapcore.WarnLevel)
	c := NewClient(NewRedisStore("redis", rc, "dd:"), time.Second, log)

	mr.Close()
	c.DeleteMatching(context.Background(), "deals:*")

	require.NotEmpty(t, logs.All())
	assert.Contains(t, logs.All()[0].Message, "invalidation failed")
}

func TestNewClient_Defaults(t *testing.T) {
	s := NewMemoryStore("memory", 0)
	t.Cleanup(func() { _ = s.Close() })

	c := NewClient(s, 0, nil)
	assert.Equal(t, defaultOpTimeout, c.timeout)
	assert.Same(t, s, c.Store())
}
