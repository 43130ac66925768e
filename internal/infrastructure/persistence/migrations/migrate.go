// Package migrations provides database migration functionality
// using golang-migrate for schema versioning
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Migrator handles database migrations
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a new migrator for a PostgreSQL connection
func New(db *sql.DB, databaseName string, logger *zap.Logger) (*Migrator, error) {
	source, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "schema_migrations",
		DatabaseName:    databaseName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{
		migrate: m,
		logger:  logger.Named("migrations"),
	}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	start := time.Now()

	from, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Schema up to date", zap.Uint("version", from))
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, _, _ := m.Version()
	m.logger.Info("Migrations applied",
		zap.Uint("from_version", from),
		zap.Uint("to_version", to),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Down rolls back one migration
func (m *Migrator) Down() error {
	if err := m.migrate.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	m.logger.Info("Migration rolled back")
	return nil
}

// Version returns the current migration version
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close closes the migrator
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}
