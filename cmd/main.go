package main

import (
	"catalog/app"
	"catalog/config"
	"catalog/database"
	"catalog/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Application run failed")
	}
	log.Info().Msg("Application stopped gracefully")
}

func run(ctx context.Context) error {
	cfg, err := config.Load("config.yaml", ".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Logger = appLogger
	appLogger.Info().Msgf("Configuration loaded: %v", cfg)

	deps, cleanup, err := setupDependencies(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := app.SetupHttpServer(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info().Msg("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout.Shutdown)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// setupDependencies connects to the configured store. The returned cleanup
// releases the database connection.
func setupDependencies(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app.Dependencies, func(), error) {
	if cfg.Store.Driver == config.StoreMemory {
		logger.Warn().Msg("Using in-memory store, data will not survive a restart")
		return app.NewMemoryDependencies(logger), func() {}, nil
	}

	client, db, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	logger.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}
	return app.NewMongoDependencies(db, cfg.Mongo.Timeout, logger), cleanup, nil
}
