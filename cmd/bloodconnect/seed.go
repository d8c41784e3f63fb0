package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"bloodconnect/internal/seed"
	"bloodconnect/pkg/types"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo donors and requests",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "requests",
			Aliases: []string{"r"},
			Usage:   "Number of random requests to submit after seeding donors",
			Value:   0,
		},
		&cli.Int64Flag{
			Name:  "rand-seed",
			Usage: "Random seed for generated requests (0 uses the clock)",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		app, err := setup(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to set up: %w", err)
		}
		defer app.Close()

		if app.config.StoreDriver == types.StoreDriverMemory {
			app.logger.Warn("STORE_DRIVER is memory, seeded data is discarded on exit")
		}

		app.logger.Info("Seeding donors...")
		n, err := seed.SeedFakeDonors(ctx, app.repos.Donors)
		if err != nil {
			return fmt.Errorf("failed to seed donors: %w", err)
		}
		app.logger.WithField("donors", n).Info("Donors seeded successfully")

		count := c.Int("requests")
		if count <= 0 {
			return nil
		}

		randSeed := c.Int64("rand-seed")
		if randSeed == 0 {
			randSeed = time.Now().UnixNano()
		}

		created, err := seed.SeedFakeRequests(ctx, app.service, rand.New(rand.NewSource(randSeed)), count)
		if err != nil {
			return fmt.Errorf("failed to seed requests: %w", err)
		}
		app.logger.WithField("requests", created).Info("Requests seeded successfully")

		return nil
	},
}
