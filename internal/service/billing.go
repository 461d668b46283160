package service

import (
	"fmt"
	"math"
	"time"

	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
)

// ComputeInvoice bills every started hour: whole elapsed hours plus one, so
// even a zero-length stay is charged one hour. A checkout earlier than the
// checkin counts as zero elapsed time. An amount that does not fit in int64
// is an error.
func ComputeInvoice(checkin, checkout time.Time, hourlyRate int64) (entities.Invoice, error) {
	elapsed := checkout.Sub(checkin)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := int64(elapsed/time.Hour) + 1
	if hourlyRate > 0 && hours > math.MaxInt64/hourlyRate {
		return entities.Invoice{}, apperrors.New(apperrors.KindInternal,
			fmt.Sprintf("invoice amount overflows: %d h at rate %d", hours, hourlyRate))
	}
	return entities.Invoice{
		DurationHour: hours,
		Amount:       hours * hourlyRate,
	}, nil
}
