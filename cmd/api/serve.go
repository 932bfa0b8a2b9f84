package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/app"
	"github.com/spec-kit/fuel-service/internal/config"
	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/observability"
	"github.com/spec-kit/fuel-service/internal/persistence"
	"github.com/spec-kit/fuel-service/internal/repository"
	"github.com/spec-kit/fuel-service/internal/service"
	"github.com/spec-kit/fuel-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	seed, err := config.LoadBootstrap(cfg.Bootstrap.File)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	var stores app.Stores
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}
		stores = app.PostgresStores(pg.PoolHandle())
	} else {
		stores = app.MemoryStores(repository.NewMemory())
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var cache service.StatsCache
	if err := redis.Ping(ctx); err == nil {
		cache = redis
	}

	forwarder := worker.NewEventForwarder(
		events.NewRedisPublisher(redis.Client, cfg.Redis.EventsChannel).Handle, logger, 0)

	metrics := observability.NewMetrics()
	a := app.New(*cfg, app.Options{
		Logger:   logger,
		Metrics:  metrics,
		Stores:   stores,
		Quotas:   service.QuotaTableFrom(seed, cfg.Quota.DefaultWeeklyQuota),
		Cache:    cache,
		Sink:     forwarder,
		Postgres: pg,
		Redis:    redis,
	})

	if err := service.Seed(ctx, seed, a.Auth, a.DMT, logger); err != nil {
		return fmt.Errorf("apply bootstrap: %w", err)
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	worker.StartNotificationWorker(workerCtx, a.Notifications, forwarder)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		errCh <- a.Fiber.Listen(cfg.App.Addr())
	}()

	select {
	case err = <-errCh:
		logger.Error("http server stopped", zap.Error(err))
	case <-ctx.Done():
		logger.Info("shutting down")
		err = nil
	}

	if shutdownErr := a.Fiber.ShutdownWithTimeout(shutdownTimeout); shutdownErr != nil {
		logger.Warn("http shutdown", zap.Error(shutdownErr))
	}
	cancelWorker()
	forwarder.Wait()
	return err
}
