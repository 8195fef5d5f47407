package analyzer

import (
	"github.com/transitpeak/transitpeak/pkg/cityboundary"
	"github.com/transitpeak/transitpeak/pkg/dailycache"
	"github.com/transitpeak/transitpeak/pkg/gtfs"
	"github.com/transitpeak/transitpeak/pkg/redis_client"
	"github.com/transitpeak/transitpeak/pkg/util"
)

const defaultFeedDirectory = "data/gtfs"

// NewServiceFromEnvironment builds a ready to use query service from
// environment configuration: TRANSITPEAK_GTFS_DIR for the feed directory,
// TRANSITPEAK_CITIES_FILE for extra city boundaries and TRANSITPEAK_CACHE
// for the cache backend (file, memory or redis).
func NewServiceFromEnvironment() (*Service, error) {
	env := util.GetEnvironmentVariables()

	feedDirectory := env["TRANSITPEAK_GTFS_DIR"]
	if feedDirectory == "" {
		feedDirectory = defaultFeedDirectory
	}

	store := gtfs.NewStore(feedDirectory)
	store.Load()

	cities := cityboundary.Defaults()
	if citiesFile := env["TRANSITPEAK_CITIES_FILE"]; citiesFile != "" {
		if err := cityboundary.LoadFile(citiesFile, cities); err != nil {
			return nil, err
		}
	}

	cache, err := cacheFromEnvironment(env)
	if err != nil {
		return nil, err
	}

	return NewService(New(store, cities), cache), nil
}

func cacheFromEnvironment(env map[string]string) (dailycache.Cache, error) {
	switch env["TRANSITPEAK_CACHE"] {
	case "redis":
		if err := redis_client.Connect(); err != nil {
			return nil, err
		}

		return dailycache.NewRedisCache(redis_client.Client), nil
	case "memory":
		return dailycache.NewMemoryCache(), nil
	default:
		return dailycache.NewFileCache(dailycache.CacheDirectory()), nil
	}
}
