package analyzer

import (
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "buses",
		Usage: "Analyse bus arrival volumes from a GTFS feed",
		Subcommands: []*cli.Command{
			{
				Name:  "peak-hours",
				Usage: "show the busiest hours of a day per stop",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "city",
						Usage:    "city to analyse",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "date in YYYY-MM-DD format, defaults to today",
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewServiceFromEnvironment()
					if err != nil {
						return err
					}

					response, _ := service.PeakHours(c.String("city"), c.String("date"))
					pretty.Println(response)

					return nil
				},
			},
			{
				Name:  "arrivals",
				Usage: "show per-stop arrival counts for one hour",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "city",
						Usage:    "city to analyse",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "date in YYYY-MM-DD format, defaults to today",
					},
					&cli.IntFlag{
						Name:     "hour",
						Usage:    "hour of day (0-23)",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					service, err := NewServiceFromEnvironment()
					if err != nil {
						return err
					}

					response, _ := service.ArrivalsAtHour(c.String("city"), c.String("date"), c.Int("hour"))
					pretty.Println(response)

					return nil
				},
			},
		},
	}
}
