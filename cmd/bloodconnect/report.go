package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bloodconnect/internal/report"
	"bloodconnect/internal/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"
)

var reportCommand = &cli.Command{
	Name:  "report",
	Usage: "Snapshot analytics and archive it to S3",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "stdout",
			Usage: "Write the snapshot to stdout instead of S3",
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

		snapshot, err := report.Build(ctx, app.service, time.Now())
		if err != nil {
			return err
		}

		if c.Bool("stdout") {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(snapshot)
		}

		if app.config.ReportBucket == "" {
			return fmt.Errorf("set REPORT_BUCKET or pass --stdout")
		}

		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}

		archive := storage.NewArchive(s3.NewFromConfig(awsConfig), app.config.ReportBucket, app.config.ReportPrefix)

		key, err := report.Publish(ctx, archive, snapshot)
		if err != nil {
			return err
		}

		app.logger.WithField("location", archive.URL(key)).Info("analytics report archived")
		return nil
	},
}
