package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/redis/go-redis/v9"
)

// SnapshotCache is the short-lived memoization table for provider
// responses. Staleness beyond the TTL is acceptable and expected; the
// cache exists to bound provider call volume, not to be authoritative.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*models.GameSnapshot, bool)
	Set(ctx context.Context, key string, snap *models.GameSnapshot, ttl time.Duration)
}

// CacheKey builds the canonical cache key from the query tuple.
func CacheKey(sport models.SportCode, teamA, teamB string, date time.Time) string {
	a, b := normalize.Fold(teamA), normalize.Fold(teamB)
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("snapshot:%s:%s:%s:%s", sport, a, b, date.Format("2006-01-02"))
}

// RedisCache stores snapshots in Redis so concurrent engine instances
// share one provider budget.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed snapshot cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.GameSnapshot, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false // miss and transport errors read the same: refetch
	}
	var snap models.GameSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *RedisCache) Set(ctx context.Context, key string, snap *models.GameSnapshot, ttl time.Duration) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	// Best effort: a failed cache write just means one more provider call.
	_ = c.client.Set(ctx, key, data, ttl).Err()
}

// MemoryCache is a process-local time-boxed table, safe for concurrent
// read/insert. Used in tests and when no Redis is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	snap      *models.GameSnapshot
	expiresAt time.Time
}

// NewMemoryCache creates an in-process snapshot cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*models.GameSnapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.snap, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, snap *models.GameSnapshot, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{snap: snap, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
