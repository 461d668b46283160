// Package migrate applies the embedded SQL schema using golang-migrate.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parkinglot/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Run applies migrations in the given direction ("up" or "down") against dsn.
// Being already at the target version is not an error.
func Run(dsn string, direction string) error {
	return RunContext(context.Background(), dsn, direction)
}

// RunContext is Run bounded by ctx. When ctx ends mid-run, migrate is asked to
// stop after the migration in progress and RunContext returns only once it has,
// so no migration is still being applied when the caller sees the error.
func RunContext(ctx context.Context, dsn string, direction string) error {
	if strings.TrimSpace(dsn) == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if direction != "up" && direction != "down" {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, migrationURL(dsn))
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	done := make(chan error, 1)
	go func() {
		if direction == "up" {
			done <- m.Up()
		} else {
			done <- m.Down()
		}
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		m.GracefulStop <- true
		if err = <-done; err == nil || errors.Is(err, migrate.ErrNoChange) {
			err = ctx.Err()
		}
		err = fmt.Errorf("migrate stopped: %w", err)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// migrationURL maps a pgx-style URL onto the scheme golang-migrate registers for Postgres.
func migrationURL(dsn string) string {
	if strings.HasPrefix(dsn, "pgx://") {
		return "postgres://" + strings.TrimPrefix(dsn, "pgx://")
	}
	return dsn
}
