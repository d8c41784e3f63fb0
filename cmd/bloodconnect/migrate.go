package main

import (
	"context"
	"fmt"

	"bloodconnect/internal/db"
	"bloodconnect/pkg/types"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply the database schema",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "print",
			Usage: "Print the schema instead of applying it",
		},
	},
	Action: func(c *cli.Context) error {
		if c.Bool("print") {
			fmt.Print(db.Schema())
			return nil
		}

		ctx := context.Background()

		app, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.config.StoreDriver != types.StoreDriverPostgres {
			return fmt.Errorf("migrate needs STORE_DRIVER=postgres")
		}

		if err := db.Migrate(ctx, app.pool); err != nil {
			return err
		}

		app.logger.Info("schema applied")
		return nil
	},
}
