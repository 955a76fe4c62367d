package client

import "sync"

// queryCache is the request-keyed response cache. Entries are invalidated by
// marking them stale; a stale entry is skipped on read and overwritten by the
// next fetch. Mirrors the invalidate-then-refetch model of the web client.
type queryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	value any
	stale bool
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]*cacheEntry)}
}

// get returns the cached value unless the entry is absent or stale.
func (qc *queryCache) get(key string) (any, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	e, ok := qc.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	return e.value, true
}

func (qc *queryCache) set(key string, v any) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.entries[key] = &cacheEntry{value: v}
}

// snapshot returns the current value even if stale, for optimistic rollback.
func (qc *queryCache) snapshot(key string) (any, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	e, ok := qc.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// invalidate marks every entry whose key starts with prefix as stale.
func (qc *queryCache) invalidate(prefix string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	for k, e := range qc.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			e.stale = true
		}
	}
}
