package dailycache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FileCache persists one JSON file per key under a directory. The filename
// is a content hash of the key so arbitrary key strings stay filesystem
// safe. Every file holds the value alongside the date it was written.
type FileCache struct {
	Directory string

	mutex sync.Mutex
	now   func() time.Time
}

func NewFileCache(directory string) *FileCache {
	if err := os.MkdirAll(directory, 0755); err != nil {
		log.Error().Err(err).Str("directory", directory).Msg("Failed to create cache directory")
	}

	return &FileCache{
		Directory: directory,
		now:       time.Now,
	}
}

func (cache *FileCache) entryPath(key string) string {
	hash := sha256.Sum256([]byte(key))

	return filepath.Join(cache.Directory, hex.EncodeToString(hash[:])+".json")
}

func (cache *FileCache) Get(key string) (json.RawMessage, bool) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	path := cache.entryPath(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Removing corrupt cache entry")
		os.Remove(path)
		return nil, false
	}

	if entry.Date != cache.now().Format(entryDateFormat) {
		log.Debug().Str("key", key).Str("date", entry.Date).Msg("Removing stale cache entry")
		os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

func (cache *FileCache) Set(key string, value any) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode cache value")
		return
	}

	entry, err := json.Marshal(cacheEntry{
		Data: data,
		Date: cache.now().Format(entryDateFormat),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}

	if err := os.MkdirAll(cache.Directory, 0755); err != nil {
		log.Error().Err(err).Str("directory", cache.Directory).Msg("Failed to create cache directory")
		return
	}

	// Write failures degrade to a cache miss on the next read
	if err := os.WriteFile(cache.entryPath(key), entry, 0644); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}

func (cache *FileCache) Delete(key string) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	os.Remove(cache.entryPath(key))
}

func (cache *FileCache) Clear() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	for _, path := range cache.entryFiles() {
		os.Remove(path)
	}
}

// EvictStale removes every entry not written today and returns how many
// files were removed. Corrupt entries count as stale.
func (cache *FileCache) EvictStale() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	today := cache.now().Format(entryDateFormat)
	removed := 0

	for _, path := range cache.entryFiles() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err != nil || entry.Date != today {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}

	return removed
}

func (cache *FileCache) entryFiles() []string {
	paths, err := filepath.Glob(filepath.Join(cache.Directory, "*.json"))
	if err != nil {
		log.Error().Err(err).Str("directory", cache.Directory).Msg("Failed to list cache directory")
		return nil
	}

	return paths
}
