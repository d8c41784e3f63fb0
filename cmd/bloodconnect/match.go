package main

import (
	"context"
	"encoding/json"
	"os"

	"bloodconnect/internal/matching"
	"bloodconnect/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var matchCommand = &cli.Command{
	Name:  "match",
	Usage: "Rank compatible donors around a location",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "blood-type",
			Aliases:  []string{"b"},
			Usage:    "Recipient blood type, e.g. AB+",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "lat",
			Usage: "Latitude of the request",
			Value: types.DefaultLatitude,
		},
		&cli.Float64Flag{
			Name:  "lon",
			Usage: "Longitude of the request",
			Value: types.DefaultLongitude,
		},
		&cli.Float64Flag{
			Name:    "radius",
			Aliases: []string{"r"},
			Usage:   "Search radius in km",
			Value:   15,
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty print the matched donors instead of JSON",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		app, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.seedSamples(ctx); err != nil {
			return err
		}

		query := types.MatchQuery{
			BloodType: c.String("blood-type"),
			Latitude:  c.Float64("lat"),
			Longitude: c.Float64("lon"),
			RadiusKm:  c.Float64("radius"),
		}

		if c.Bool("pretty") {
			bloodType, err := types.ParseBloodType(query.BloodType)
			if err != nil {
				return err
			}
			matches, err := app.service.Engine().FindCompatibleDonors(ctx, matching.Query{
				BloodType: bloodType,
				Latitude:  query.Latitude,
				Longitude: query.Longitude,
				RadiusKm:  query.RadiusKm,
			})
			if err != nil {
				return err
			}
			pp.Println(matches)
			return nil
		}

		results, err := app.service.Match(ctx, query)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	},
}
