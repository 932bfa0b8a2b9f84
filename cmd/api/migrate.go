package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/config"
	"github.com/spec-kit/fuel-service/internal/observability"
	"github.com/spec-kit/fuel-service/internal/persistence"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := migrationEnv()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		return persistence.RunMigrations(cfg.Postgres.DSN, logger)
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := migrationEnv()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		return persistence.RollbackMigrations(cfg.Postgres.DSN, logger, migrateDownSteps)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to revert")
}

func migrationEnv() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
