package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
)

type PostgresParkingRepository struct {
	DB *sql.DB
}

func NewParkingRepository(db *sql.DB) *PostgresParkingRepository {
	return &PostgresParkingRepository{DB: db}
}

func (r *PostgresParkingRepository) CountActiveByBlock(ctx context.Context, blockID int64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM parking WHERE block_id = $1 AND checkout IS NULL`, blockID).Scan(&n)
	if err != nil {
		return 0, classify(err, "count active sessions")
	}
	return n, nil
}

// Admit locks the block row for the rest of the transaction, so concurrent
// admissions to one block run the count-and-insert one at a time.
func (r *PostgresParkingRepository) Admit(ctx context.Context, s *db.ParkingSession) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return classify(err, "begin admission")
	}
	defer tx.Rollback()

	var capacity int64
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM block WHERE id = $1 FOR UPDATE`, s.BlockID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.New(apperrors.KindUnknownBlock, fmt.Sprintf("block %d not found", s.BlockID))
		}
		return apperrors.Wrap(apperrors.KindAvailabilityLookupFailed, err, "read block capacity")
	}

	var parked bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM parking WHERE vehicle_id = $1 AND checkout IS NULL)`, s.VehicleID).Scan(&parked)
	if err != nil {
		return apperrors.Wrap(apperrors.KindAvailabilityLookupFailed, err, "check vehicle sessions")
	}
	if parked {
		return apperrors.New(apperrors.KindAlreadyParked, fmt.Sprintf("vehicle %s already has an active session", s.VehicleID))
	}

	var active int64
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM parking WHERE block_id = $1 AND checkout IS NULL`, s.BlockID).Scan(&active)
	if err != nil {
		return apperrors.Wrap(apperrors.KindAvailabilityLookupFailed, err, "count active sessions")
	}
	if active >= capacity {
		return apperrors.New(apperrors.KindBlockFull, fmt.Sprintf("block %d is full (%d/%d)", s.BlockID, active, capacity))
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO parking (vehicle_id, checkin, block_id) VALUES ($1, $2, $3) RETURNING id`,
		s.VehicleID, s.Checkin, s.BlockID,
	).Scan(&s.ID)
	if err != nil {
		return classify(err, "insert session")
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "commit admission")
	}
	return nil
}

func (r *PostgresParkingRepository) FindActiveByVehicle(ctx context.Context, vehicleID string) ([]db.ParkingSession, error) {
	query := `
		SELECT id, vehicle_id, block_id, checkin, checkout
		FROM parking
		WHERE vehicle_id = $1 AND checkout IS NULL
		ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, classify(err, "find active sessions")
	}
	defer rows.Close()

	var sessions []db.ParkingSession
	for rows.Next() {
		var s db.ParkingSession
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.BlockID, &s.Checkin, &s.Checkout); err != nil {
			return nil, classify(fmt.Errorf("error scanning session: %w", err), "find active sessions")
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("error after iterating session rows: %w", err), "find active sessions")
	}
	return sessions, nil
}

func (r *PostgresParkingRepository) Close(ctx context.Context, sessionID int64, checkout string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE parking SET checkout = $2 WHERE id = $1 AND checkout IS NULL`, sessionID, checkout)
	if err != nil {
		return classify(err, "close session")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return classify(err, "close session")
	}
	if n == 0 {
		return apperrors.New(apperrors.KindNoActiveSession, fmt.Sprintf("session %d is no longer active", sessionID))
	}
	return nil
}
