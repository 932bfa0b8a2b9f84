package persistence

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies every pending up migration.
func RunMigrations(dsn string, logger *zap.Logger) error {
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not provided; skipping migrations")
		return nil
	}
	migrator, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(migrator)

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	version, _, _ := migrator.Version()
	logger.Info("migrations applied", zap.Uint("version", version))
	return nil
}

// RollbackMigrations reverts the given number of migrations.
func RollbackMigrations(dsn string, logger *zap.Logger, steps int) error {
	if dsn == "" {
		return errors.New("POSTGRES_DSN not provided")
	}
	if steps <= 0 {
		steps = 1
	}
	migrator, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer closeMigrator(migrator)

	if err := migrator.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	logger.Info("migrations rolled back", zap.Int("steps", steps))
	return nil
}

// newMigrator opens its own connection so closing the migrator never touches
// the application pool.
func newMigrator(dsn string) (*migrate.Migrate, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	driver, err := pgxmigrate.WithInstance(stdlib.OpenDB(*connCfg), &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("init migration driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return migrator, nil
}

func closeMigrator(m *migrate.Migrate) {
	_, _ = m.Close()
}
