package testutil

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KOMKZ/go-dealdesk/auth"
	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/logger"
	"github.com/KOMKZ/go-dealdesk/store"
)

// OpenTestDB returns a migrated in-memory database, closed on test cleanup
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := store.Open(store.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestCache returns a cache client backed by an embedded redis, plus the
// miniredis handle for TTL manipulation
func NewTestCache(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	client := cache.NewClient(cache.NewRedisStore("redis", rdb, ""), 0, logger.Nop("cache"))
	return client, mr
}

// IssueToken signs a token for the given identity with the shared test secret
func IssueToken(t *testing.T, tm auth.TokenManager, userID, orgID string, roles ...string) string {
	t.Helper()
	token, err := tm.Issue(context.Background(), userID, orgID, roles)
	require.NoError(t, err)
	return token
}
