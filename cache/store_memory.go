package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore in-process cache storage. Serves as the degraded fallback when
// redis is not configured, and as the backend for handler tests.
type MemoryStore struct {
	name    string
	data    map[string]*memoryItem
	mu      sync.RWMutex
	maxSize int
	stopCh  chan struct{}
	oneStop sync.Once
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates a memory store holding at most maxSize entries
func NewMemoryStore(name string, maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 10000
	}
	s := &MemoryStore{
		name:    name,
		data:    make(map[string]*memoryItem),
		maxSize: maxSize,
		stopCh:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Name returns the store name
func (s *MemoryStore) Name() string {
	return s.name
}

// Get reads a cache value; ErrCacheMiss when absent or expired
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if item.expired(time.Now()) {
		_ = s.Delete(ctx, key)
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set writes a cache value; evicts the oldest entry when full
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists && len(s.data) >= s.maxSize {
		s.evictOldest()
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	s.data[key] = &memoryItem{value: value, expiresAt: expiresAt}
	return nil
}

// Delete removes a single key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// DeleteMatching removes keys matching the glob pattern, returning the count
func (s *MemoryStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key := range s.data {
		if matchGlob(pattern, key) {
			delete(s.data, key)
			deleted++
		}
	}
	return deleted, nil
}

// Flush drops every entry
func (s *MemoryStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*memoryItem)
	return nil
}

// Close stops the janitor and drops all entries
func (s *MemoryStore) Close() error {
	s.oneStop.Do(func() { close(s.stopCh) })
	return s.Flush(context.Background())
}

// Size returns the current entry count
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// evictOldest drops the entry closest to expiry (caller holds the lock)
func (s *MemoryStore) evictOldest() {
	var oldest string
	var oldestTime time.Time
	for key, item := range s.data {
		if oldest == "" || (!item.expiresAt.IsZero() && (oldestTime.IsZero() || item.expiresAt.Before(oldestTime))) {
			oldest = key
			oldestTime = item.expiresAt
		}
	}
	if oldest != "" {
		delete(s.data, oldest)
	}
}

// janitor periodically drops expired entries
func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, item := range s.data {
		if item.expired(now) {
			delete(s.data, key)
		}
	}
}
