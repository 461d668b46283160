package service

import (
	"context"
	"fmt"
	"time"

	"parkinglot/internal/db"
	"parkinglot/internal/repository"
)

type AvailabilityService struct {
	parking repository.ParkingRepository
	timeout time.Duration
}

func NewAvailabilityService(parking repository.ParkingRepository, timeout time.Duration) *AvailabilityService {
	return &AvailabilityService{parking: parking, timeout: timeout}
}

// ActiveSessionCount returns the number of sessions in the block with no checkout.
func (s *AvailabilityService) ActiveSessionCount(ctx context.Context, blockID int64) (int64, error) {
	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.parking.CountActiveByBlock(ctx, blockID)
	if err != nil {
		return 0, fmt.Errorf("active sessions for block %d: %w", blockID, err)
	}
	return n, nil
}

// EffectiveAvailability is capacity minus active sessions. A negative result
// means the block was over-admitted; it is returned as-is, never as capacity.
func (s *AvailabilityService) EffectiveAvailability(ctx context.Context, b db.Block) (int64, error) {
	n, err := s.ActiveSessionCount(ctx, b.ID)
	if err != nil {
		return 0, err
	}
	return int64(b.Capacity) - n, nil
}
