package dailycache

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/transitpeak/transitpeak/pkg/util"
)

const defaultCacheDirectory = "data/cache"

// CacheDirectory returns the configured cache directory.
func CacheDirectory() string {
	env := util.GetEnvironmentVariables()

	if env["TRANSITPEAK_CACHE_DIR"] != "" {
		return env["TRANSITPEAK_CACHE_DIR"]
	}

	return defaultCacheDirectory
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the daily result cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "directory",
				Value: "",
				Usage: "cache directory, defaults to TRANSITPEAK_CACHE_DIR",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "evict-stale",
				Usage: "remove every cache entry not written today",
				Action: func(c *cli.Context) error {
					cache := NewFileCache(directoryFromContext(c))
					removed := cache.EvictStale()

					log.Info().Int("removed", removed).Msg("Evicted stale cache entries")

					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "remove every cache entry",
				Action: func(c *cli.Context) error {
					cache := NewFileCache(directoryFromContext(c))
					cache.Clear()

					log.Info().Msg("Cleared cache")

					return nil
				},
			},
		},
	}
}

func directoryFromContext(c *cli.Context) string {
	if directory := c.String("directory"); directory != "" {
		return directory
	}

	return CacheDirectory()
}
