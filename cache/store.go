package cache

import "time"

// Store is the cache backend contract: both MemoryStore and RedisStore
// implement it, so the pipeline can swap backends without touching caller
// code.
type Store interface {
	Get(key string) (value []byte, hit bool)
	Set(key string, value []byte)
	Stats() Stats
	Close() error
}

// Options configures eviction and expiry. Field names follow the
// configuration keys a caller loads from YAML/env (see cmd/fileflux).
type Options struct {
	MaxCacheSize           int
	EvictionBatchSize      int
	CleanupIntervalMinutes int
	DefaultExpirationHours int
	MaxItemSizeMB          float64
}

// DefaultOptions matches the teacher-stack sizing used across the ambient
// config defaults: a few thousand entries, hourly sweeps, a day's expiry.
func DefaultOptions() Options {
	return Options{
		MaxCacheSize:           2000,
		EvictionBatchSize:      100,
		CleanupIntervalMinutes: 60,
		DefaultExpirationHours: 24,
		MaxItemSizeMB:          10,
	}
}

func (o Options) cleanupInterval() time.Duration {
	return time.Duration(o.CleanupIntervalMinutes) * time.Minute
}

func (o Options) expiration() time.Duration {
	return time.Duration(o.DefaultExpirationHours) * time.Hour
}

// Stats reports the counters the CLI's cache-info output and the
// pipeline's logging both surface.
type Stats struct {
	ItemCount         int
	MemoryUsageBytes  int64
	TotalHits         int64
	MaxCacheSize      int
	MaxItemSizeMB     float64
	OldestEntryAge    time.Duration
	MemoryEfficiency  float64 // hits per byte cached; 0 when nothing is cached
}
