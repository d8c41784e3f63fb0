package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodconnect/internal/server"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup(ctx, cCtx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.seedSamples(ctx); err != nil {
		return err
	}

	srv, err := server.New(app.config, app.logger, app.service, app.metrics.Handler())
	if err != nil {
		return err
	}

	logger := app.logger
	go func() {
		logger.WithField("port", app.config.ServerPort).Infof("server starting http://localhost:%d", app.config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
