package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	value        []byte
	insertedAt   time.Time
	lastAccessed time.Time
	hitCount     int64
}

// MemoryStore is the bounded in-memory Store: an LRU of entries, a
// periodic TTL sweeper, and a per-item size cap enforced at insertion.
type MemoryStore struct {
	mu    sync.Mutex
	lru   *lru.Cache[string, *cacheEntry]
	opts  Options
	hits  int64
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewMemoryStore builds a MemoryStore and starts its TTL sweeper; callers
// must call Close to stop the sweeper goroutine.
func NewMemoryStore(opts Options) (*MemoryStore, error) {
	c, err := lru.New[string, *cacheEntry](opts.MaxCacheSize)
	if err != nil {
		return nil, err
	}
	s := &MemoryStore{lru: c, opts: opts, done: make(chan struct{})}
	s.wg.Add(1)
	go s.sweepLoop()
	return s, nil
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lru.Get(key)
	if !ok {
		return nil, false
	}
	e.lastAccessed = time.Now()
	e.hitCount++
	s.hits++
	return e.value, true
}

// Set silently rejects (no error, no log line) any value whose size exceeds
// MaxItemSizeMB, then evicts EvictionBatchSize oldest-accessed entries in
// one pass if the cache is already at capacity before inserting.
func (s *MemoryStore) Set(key string, value []byte) {
	if sizeMB := float64(len(value)) / (1024 * 1024); sizeMB > s.opts.MaxItemSizeMB {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lru.Len() >= s.opts.MaxCacheSize {
		for i := 0; i < s.opts.EvictionBatchSize && s.lru.Len() > 0; i++ {
			s.lru.RemoveOldest()
		}
	}

	now := time.Now()
	s.lru.Add(key, &cacheEntry{value: value, insertedAt: now, lastAccessed: now})
}

func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mem int64
	var oldest time.Time
	for _, k := range s.lru.Keys() {
		e, ok := s.lru.Peek(k)
		if !ok {
			continue
		}
		mem += int64(len(e.value))
		if oldest.IsZero() || e.insertedAt.Before(oldest) {
			oldest = e.insertedAt
		}
	}

	var oldestAge time.Duration
	if !oldest.IsZero() {
		oldestAge = time.Since(oldest)
	}
	efficiency := 0.0
	if mem > 0 {
		efficiency = float64(s.hits) / float64(mem)
	}

	return Stats{
		ItemCount:        s.lru.Len(),
		MemoryUsageBytes: mem,
		TotalHits:        s.hits,
		MaxCacheSize:     s.opts.MaxCacheSize,
		MaxItemSizeMB:    s.opts.MaxItemSizeMB,
		OldestEntryAge:   oldestAge,
		MemoryEfficiency: efficiency,
	}
}

func (s *MemoryStore) Close() error {
	close(s.done)
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) sweepLoop() {
	defer s.wg.Done()
	interval := s.opts.cleanupInterval()
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepExpired()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.opts.expiration())
	for _, k := range s.lru.Keys() {
		e, ok := s.lru.Peek(k)
		if ok && e.lastAccessed.Before(cutoff) {
			s.lru.Remove(k)
		}
	}
}
