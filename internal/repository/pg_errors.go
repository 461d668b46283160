package repository

import (
	"context"
	"errors"
	"strings"

	apperrors "parkinglot/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	sqlStateUniqueViolation = "23505"

	constraintBlockName     = "block_name_key"
	constraintActiveVehicle = "parking_vehicle_active_uidx"
)

// sqlState returns the SQLSTATE and constraint name of a Postgres error from
// either supported driver.
func sqlState(err error) (code, constraint string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// classify maps a store error onto the error taxonomy. Integrity violations
// (class 23) and bad values (class 22, e.g. numeric out of range) are not
// retryable; everything else the store reports is treated as the store being
// unavailable.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	var he *apperrors.HTTPError
	if errors.As(err, &he) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.KindStoreUnavailable, err, op+": store timed out")
	}
	code, constraint := sqlState(err)
	switch {
	case code == sqlStateUniqueViolation && constraint == constraintBlockName:
		return apperrors.Wrap(apperrors.KindDuplicateName, err, "block name already exists")
	case code == sqlStateUniqueViolation && constraint == constraintActiveVehicle:
		return apperrors.Wrap(apperrors.KindAlreadyParked, err, "vehicle already has an active session")
	case strings.HasPrefix(code, "23"):
		return apperrors.Wrap(apperrors.KindConstraintViolation, err, op+": constraint violation")
	case strings.HasPrefix(code, "22"):
		return apperrors.Wrap(apperrors.KindInvalidInput, err, op+": value rejected by the store")
	}
	return apperrors.Wrap(apperrors.KindStoreUnavailable, err, op)
}
