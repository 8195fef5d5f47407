package dailycache

import (
	"encoding/json"
	"time"
)

// Cache is a key/value store whose entries are only valid on the calendar
// day (local timezone) they were written. Reading an entry written on an
// earlier day removes it and reports it absent.
type Cache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value any)
	Delete(key string)
	Clear()
	EvictStale() int
}

const entryDateFormat = "2006-01-02"

type cacheEntry struct {
	Data json.RawMessage `json:"data"`
	Date string          `json:"date"`
}

// Memoize returns the cached value for key when present, otherwise computes
// it, stores it and returns it. Compute failures are returned uncached so
// the next call retries.
func Memoize[T any](cache Cache, key string, compute func() (T, error)) (T, error) {
	if raw, exists := cache.Get(key); exists {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}

		cache.Delete(key)
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	cache.Set(key, value)

	return value, nil
}

func untilMidnight(now time.Time) time.Duration {
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	return midnight.Sub(now)
}
