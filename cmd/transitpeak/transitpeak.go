package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/transitpeak/transitpeak/pkg/analyzer"
	"github.com/transitpeak/transitpeak/pkg/api"
	"github.com/transitpeak/transitpeak/pkg/dailycache"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TRANSITPEAK_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRANSITPEAK_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "transitpeak",
		Description: "Bus peak-hour analysis over static GTFS feeds",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			analyzer.RegisterCLI(),
			dailycache.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
