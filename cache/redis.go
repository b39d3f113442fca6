package cache

import (
	"context"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the optional distributed Store backend, for deployments
// that run multiple pipeline processes against one shared cache. TTL and
// the per-item size cap are enforced the same way as MemoryStore; the
// size-based eviction batch is delegated to Redis's own key eviction
// policy (maxmemory-policy), since a client-side LRU pass isn't meaningful
// against a shared server.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	opts      Options
	hits      int64
}

func NewRedisStore(client *redis.Client, keyPrefix string, opts Options) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix, opts: opts}
}

func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx := context.Background()
	val, err := s.client.Get(ctx, s.prefixed(key)).Bytes()
	if err != nil {
		return nil, false
	}
	atomic.AddInt64(&s.hits, 1)
	s.client.Expire(ctx, s.prefixed(key), s.opts.expiration())
	return val, true
}

func (s *RedisStore) Set(key string, value []byte) {
	if sizeMB := float64(len(value)) / (1024 * 1024); sizeMB > s.opts.MaxItemSizeMB {
		return
	}
	s.client.Set(context.Background(), s.prefixed(key), value, s.opts.expiration())
}

func (s *RedisStore) Stats() Stats {
	ctx := context.Background()
	count, _ := s.client.DBSize(ctx).Result()
	return Stats{
		ItemCount:     int(count),
		TotalHits:     atomic.LoadInt64(&s.hits),
		MaxCacheSize:  s.opts.MaxCacheSize,
		MaxItemSizeMB: s.opts.MaxItemSizeMB,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) prefixed(key string) string {
	return s.keyPrefix + key
}
