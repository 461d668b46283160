package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/repository"
)

type CheckoutService struct {
	parking repository.ParkingRepository
	blocks  repository.BlockRepository
	clock   Clock
	timeout time.Duration
}

func NewCheckoutService(parking repository.ParkingRepository, blocks repository.BlockRepository, clock Clock, timeout time.Duration) *CheckoutService {
	return &CheckoutService{
		parking: parking,
		blocks:  blocks,
		clock:   clock,
		timeout: timeout,
	}
}

// Checkout closes the vehicle's single active session and bills it at the
// block's current hourly rate. Every check that can fail runs before the
// session is written, so a failed checkout leaves the session open.
func (s *CheckoutService) Checkout(ctx context.Context, vehicleID string) (*entities.CheckoutInvoice, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "vehicle_id is required")
	}

	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()

	sessions, err := s.parking.FindActiveByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", vehicleID, err)
	}
	switch len(sessions) {
	case 0:
		return nil, apperrors.New(apperrors.KindNoActiveSession, fmt.Sprintf("no active session for vehicle %s", vehicleID))
	case 1:
	default:
		log.Printf("ALERT: vehicle %s has %d active sessions; refusing to pick one", vehicleID, len(sessions))
		return nil, apperrors.New(apperrors.KindMultipleActiveSessions,
			fmt.Sprintf("vehicle %s has %d active sessions", vehicleID, len(sessions)))
	}
	session := sessions[0]

	checkin, err := time.Parse(time.RFC3339, session.Checkin)
	if err != nil {
		log.Printf("Cannot parse checkin %q of session %d: %v", session.Checkin, session.ID, err)
		return nil, apperrors.Wrap(apperrors.KindTimestampParseError, err, fmt.Sprintf("session %d has an invalid checkin", session.ID))
	}

	block, err := s.blocks.FindByID(ctx, session.BlockID)
	if err != nil {
		return nil, fmt.Errorf("hourly rate for block %d: %w", session.BlockID, err)
	}

	checkoutAt := s.clock.Now().Truncate(time.Second)
	invoice, err := ComputeInvoice(checkin, checkoutAt, block.HourlyRate)
	if err != nil {
		log.Printf("Cannot bill session %d for vehicle %s: %v", session.ID, vehicleID, err)
		return nil, err
	}

	checkout := checkoutAt.Format(time.RFC3339)
	if err := s.parking.Close(ctx, session.ID, checkout); err != nil {
		log.Printf("Error closing session %d for vehicle %s: %v", session.ID, vehicleID, err)
		return nil, err
	}

	log.Printf("Vehicle %s checked out of block %d (session %d): %d h, amount %d",
		vehicleID, session.BlockID, session.ID, invoice.DurationHour, invoice.Amount)

	return &entities.CheckoutInvoice{
		VehicleID: session.VehicleID,
		Checkin:   session.Checkin,
		Checkout:  checkout,
		BlockID:   session.BlockID,
		Invoice:   invoice,
	}, nil
}
