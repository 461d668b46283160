package repository

import (
	"context"
	"database/sql"

	"parkinglot/internal/db/migrate"
)

// PostgresAdminRepository handles schema setup and health checks.
type PostgresAdminRepository struct {
	DB  *sql.DB
	DSN string
}

func NewAdminRepository(db *sql.DB, dsn string) *PostgresAdminRepository {
	return &PostgresAdminRepository{DB: db, DSN: dsn}
}

// InitSchema applies the embedded migrations; it is a no-op once they are
// applied. If ctx ends first it waits for the migration in progress to finish
// before returning StoreUnavailable.
func (r *PostgresAdminRepository) InitSchema(ctx context.Context) error {
	return classify(migrate.RunContext(ctx, r.DSN, "up"), "initiate database")
}

func (r *PostgresAdminRepository) Ping(ctx context.Context) error {
	return classify(r.DB.PingContext(ctx), "ping")
}

// NewPostgresStore wires the Postgres repositories over one shared pool.
func NewPostgresStore(db *sql.DB, dsn string) *Store {
	return &Store{
		Blocks:  NewBlockRepository(db),
		Parking: NewParkingRepository(db),
		Admin:   NewAdminRepository(db, dsn),
	}
}
