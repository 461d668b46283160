package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
)

type PostgresBlockRepository struct {
	DB *sql.DB
}

func NewBlockRepository(db *sql.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{DB: db}
}

func (r *PostgresBlockRepository) Create(ctx context.Context, b *db.Block) error {
	query := `
		INSERT INTO block (name, capacity, hourly_rate, floor, vehicle_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.DB.QueryRowContext(ctx, query, b.Name, b.Capacity, b.HourlyRate, b.Floor, b.VehicleType).Scan(&b.ID)
	if err != nil {
		return classify(err, "create block")
	}
	return nil
}

func (r *PostgresBlockRepository) FindByID(ctx context.Context, id int64) (*db.Block, error) {
	var b db.Block
	query := `SELECT id, name, capacity, hourly_rate, floor, vehicle_type FROM block WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Capacity, &b.HourlyRate, &b.Floor, &b.VehicleType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindUnknownBlock, fmt.Sprintf("block %d not found", id))
		}
		return nil, classify(err, "find block")
	}
	return &b, nil
}

func (r *PostgresBlockRepository) ListByVehicleType(ctx context.Context, vehicleType string) ([]db.Block, error) {
	query := `
		SELECT id, name, capacity, hourly_rate, floor, vehicle_type
		FROM block
		WHERE vehicle_type = $1
		ORDER BY id`
	return r.list(ctx, "list blocks by vehicle type", query, vehicleType)
}

func (r *PostgresBlockRepository) List(ctx context.Context) ([]db.Block, error) {
	query := `SELECT id, name, capacity, hourly_rate, floor, vehicle_type FROM block ORDER BY id`
	return r.list(ctx, "list blocks", query)
}

func (r *PostgresBlockRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]db.Block, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, op)
	}
	defer rows.Close()

	blocks := []db.Block{}
	for rows.Next() {
		var b db.Block
		if err := rows.Scan(&b.ID, &b.Name, &b.Capacity, &b.HourlyRate, &b.Floor, &b.VehicleType); err != nil {
			return nil, classify(fmt.Errorf("error scanning block: %w", err), op)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("error after iterating block rows: %w", err), op)
	}
	return blocks, nil
}
