package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatchSize SCAN page size for pattern deletion
const scanBatchSize = 100

// RedisStore redis-backed cache storage
type RedisStore struct {
	name      string
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore creates a redis store. keyPrefix isolates this application's
// keys from other tenants of a shared redis (glossary "namespace" sits above
// it in the key itself; the prefix guards against unrelated applications).
func NewRedisStore(name string, client redis.UniversalClient, keyPrefix string) *RedisStore {
	return &RedisStore{
		name:      name,
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Name returns the store name
func (s *RedisStore) Name() string {
	return s.name
}

func (s *RedisStore) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + key
}

// Get reads a cache value; ErrCacheMiss when absent
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.Get(ctx, s.fullKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, ErrStoreGet.Wrap(err)
	}
	return result, nil
}

// Set writes a cache value with TTL
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.fullKey(key), value, ttl).Err(); err != nil {
		return ErrStoreSet.Wrap(err)
	}
	return nil
}

// Delete removes a single key; absent keys are not an error
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return ErrStoreDelete.Wrap(err)
	}
	return nil
}

// DeleteMatching removes every key matching the glob pattern and returns the
// count removed. Uses SCAN rather than KEYS so a large keyspace never blocks
// redis; redis supports glob scans natively, so no secondary key index is
// maintained.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	fullPattern := s.fullKey(pattern)

	var cursor uint64
	deleted := 0
	for {
		batch, next, err := s.client.Scan(ctx, cursor, fullPattern, scanBatchSize).Result()
		if err != nil {
			return deleted, ErrStoreDelete.Wrap(err)
		}
		if len(batch) > 0 {
			n, err := s.client.Del(ctx, batch...).Result()
			if err != nil {
				return deleted, ErrStoreDelete.Wrap(err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// Flush evicts every key under the store's prefix
func (s *RedisStore) Flush(ctx context.Context) error {
	_, err := s.DeleteMatching(ctx, "*")
	return err
}

// Close is a no-op: the redis client lifecycle belongs to its manager
func (s *RedisStore) Close() error {
	return nil
}
