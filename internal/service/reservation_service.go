package service

import (
	"context"
	"log"
	"strings"
	"time"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/repository"
)

type ReservationService struct {
	parking repository.ParkingRepository
	clock   Clock
	timeout time.Duration
}

func NewReservationService(parking repository.ParkingRepository, clock Clock, timeout time.Duration) *ReservationService {
	return &ReservationService{
		parking: parking,
		clock:   clock,
		timeout: timeout,
	}
}

// Enter checks a vehicle into a block. Admission is decided by the store in
// one atomic step: the block must exist, have active sessions below capacity,
// and the vehicle must not already be parked. If capacity cannot be read the
// entry is denied with AvailabilityLookupFailed.
func (s *ReservationService) Enter(ctx context.Context, req entities.EnterRequest) (*db.ParkingSession, error) {
	vehicleID := strings.TrimSpace(req.VehicleID)
	if vehicleID == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "vehicle_id is required")
	}
	if req.BlockID <= 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "block_id must be positive")
	}

	session := &db.ParkingSession{
		VehicleID: vehicleID,
		BlockID:   req.BlockID,
		Checkin:   s.clock.Now().Format(time.RFC3339),
	}

	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.parking.Admit(ctx, session); err != nil {
		log.Printf("Entry denied for vehicle %s into block %d: %v", vehicleID, req.BlockID, err)
		return nil, err
	}
	log.Printf("Vehicle %s checked into block %d (session %d) at %s", vehicleID, session.BlockID, session.ID, session.Checkin)
	return session, nil
}
