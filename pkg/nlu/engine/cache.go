package engine

import (
	"context"
	"encoding/json"
	"time"

	"ai-travelmate-be/pkg/nlu"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how long a classification result may be replayed.
const DefaultCacheTTL = 30 * time.Minute

// ResultCache stores classification results keyed by normalized text plus a
// context hash. Implementations are shared across sessions; last writer wins.
type ResultCache interface {
	Get(ctx context.Context, key string) (*nlu.Result, bool)
	Set(ctx context.Context, key string, result *nlu.Result)
}

// MemoryCache is the in-process fallback, used when no Redis is configured.
type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{cache: gocache.New(ttl, 10*time.Minute)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*nlu.Result, bool) {
	if x, found := m.cache.Get(key); found {
		cached := x.(nlu.Result)
		return &cached, true
	}
	return nil, false
}

func (m *MemoryCache) Set(_ context.Context, key string, result *nlu.Result) {
	m.cache.Set(key, *result, gocache.DefaultExpiration)
}

// RedisCache shares classification results across instances.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*nlu.Result, bool) {
	data, err := r.rdb.Get(ctx, "nlu:result:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var result nlu.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (r *RedisCache) Set(ctx context.Context, key string, result *nlu.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Best effort; a failed write only costs a future recomputation.
	r.rdb.Set(ctx, "nlu:result:"+key, data, r.ttl)
}
