package main

import (
	"context"
	"fmt"

	"bloodconnect/internal/db"
	"bloodconnect/internal/matching"
	"bloodconnect/internal/metrics"
	"bloodconnect/internal/service"
	"bloodconnect/internal/store"
	"bloodconnect/internal/store/memory"
	"bloodconnect/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// application is everything a command needs once config is loaded.
type application struct {
	config  *types.Config
	logger  *logrus.Logger
	metrics *metrics.Collector
	repos   service.Repositories
	service *service.Service
	pool    *pgxpool.Pool
}

func setup(ctx context.Context, cCtx *cli.Context) (*application, error) {
	config, err := loadConfig(cCtx.String("env-prefix"))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(config)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:  config,
		logger:  logger,
		metrics: metrics.New(),
	}

	var donors matching.DonorSource
	switch config.StoreDriver {
	case types.StoreDriverPostgres:
		pool, err := db.Connect(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.pool = pool

		donorRepo := store.NewDonorRepository(pool)
		donors = donorRepo
		app.repos = service.Repositories{
			Donors:        donorRepo,
			Requests:      store.NewRequestRepository(pool),
			Notifications: store.NewNotificationRepository(pool),
			Donations:     store.NewDonationRepository(pool),
		}
	default:
		mem := memory.New()
		donors = mem
		app.repos = service.Repositories{
			Donors:        mem,
			Requests:      mem,
			Notifications: mem,
			Donations:     mem,
		}
	}

	logger.WithField("store", config.StoreDriver).Debug("storage configured")

	opts := service.OptionsFromConfig(config)
	opts.Events = app.metrics

	engine := matching.NewEngine(donors, logger, app.metrics)
	app.service = service.New(logger, app.repos, engine, opts)

	return app, nil
}

// seedSamples loads the sample donors when enabled and the store is empty.
func (a *application) seedSamples(ctx context.Context) error {
	if !a.config.SeedSampleData {
		return nil
	}

	n, err := a.service.SeedSampleData(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}
	if n > 0 {
		a.logger.WithField("donors", n).Info("sample donors loaded")
	}
	return nil
}

func (a *application) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
