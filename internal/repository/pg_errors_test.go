package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "parkinglot/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"pq duplicate block name", &pq.Error{Code: "23505", Constraint: constraintBlockName}, apperrors.KindDuplicateName},
		{"pgx duplicate block name", &pgconn.PgError{Code: "23505", ConstraintName: constraintBlockName}, apperrors.KindDuplicateName},
		{"pq active vehicle index", &pq.Error{Code: "23505", Constraint: constraintActiveVehicle}, apperrors.KindAlreadyParked},
		{"pgx foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "parking_block_id_fkey"}, apperrors.KindConstraintViolation},
		{"pq check violation", &pq.Error{Code: "23514"}, apperrors.KindConstraintViolation},
		{"pq numeric out of range", &pq.Error{Code: "22003"}, apperrors.KindInvalidInput},
		{"pgx invalid text representation", &pgconn.PgError{Code: "22P02"}, apperrors.KindInvalidInput},
		{"pq connection failure", &pq.Error{Code: "08006"}, apperrors.KindStoreUnavailable},
		{"wrapped driver error", fmt.Errorf("scan: %w", errors.New("driver: bad connection")), apperrors.KindStoreUnavailable},
		{"deadline", context.DeadlineExceeded, apperrors.KindStoreUnavailable},
		{"already classified", apperrors.New(apperrors.KindBlockFull, "full"), apperrors.KindBlockFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err, "op")
			assert.Equal(t, tt.want, apperrors.KindOf(err))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify(nil, "op"))
}

func TestClassify_KeepsCause(t *testing.T) {
	cause := &pq.Error{Code: "23503"}
	err := classify(cause, "insert session")
	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.False(t, apperrors.Retryable(err))
}

func TestClassify_OutOfRangeIsNotRetryable(t *testing.T) {
	err := classify(&pq.Error{Code: "22003"}, "create block")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 400, apperrors.As(err).Code)
	assert.False(t, apperrors.Retryable(err))
}
