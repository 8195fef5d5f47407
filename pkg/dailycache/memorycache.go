package dailycache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MemoryCache keeps entries in a map with the same one-day validity as the
// file backend. Values round-trip through JSON so callers observe identical
// fidelity to the persistent backends. Intended for tests and single-run
// tooling.
type MemoryCache struct {
	mutex   sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: map[string]cacheEntry{},
		now:     time.Now,
	}
}

func (cache *MemoryCache) Get(key string) (json.RawMessage, bool) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	entry, exists := cache.entries[key]
	if !exists {
		return nil, false
	}

	if entry.Date != cache.now().Format(entryDateFormat) {
		delete(cache.entries, key)
		return nil, false
	}

	return entry.Data, true
}

func (cache *MemoryCache) Set(key string, value any) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode cache value")
		return
	}

	cache.entries[key] = cacheEntry{
		Data: data,
		Date: cache.now().Format(entryDateFormat),
	}
}

func (cache *MemoryCache) Delete(key string) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	delete(cache.entries, key)
}

func (cache *MemoryCache) Clear() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	cache.entries = map[string]cacheEntry{}
}

func (cache *MemoryCache) EvictStale() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	today := cache.now().Format(entryDateFormat)
	removed := 0

	for key, entry := range cache.entries {
		if entry.Date != today {
			delete(cache.entries, key)
			removed++
		}
	}

	return removed
}
