package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/repository"
	"parkinglot/internal/utils"
)

type BlockService struct {
	blocks       repository.BlockRepository
	availability *AvailabilityService
	timeout      time.Duration
}

func NewBlockService(blocks repository.BlockRepository, availability *AvailabilityService, timeout time.Duration) *BlockService {
	return &BlockService{
		blocks:       blocks,
		availability: availability,
		timeout:      timeout,
	}
}

func (s *BlockService) CreateBlock(ctx context.Context, req entities.CreateBlockRequest) (*db.Block, error) {
	block := &db.Block{
		Name:        strings.TrimSpace(req.Name),
		Capacity:    req.Availability,
		HourlyRate:  req.HourlyRate,
		Floor:       req.Floor,
		VehicleType: utils.NormalizeVehicleType(req.VehicleType),
	}
	if err := validateBlock(block); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.blocks.Create(ctx, block); err != nil {
		log.Printf("Error creating block %q: %v", block.Name, err)
		return nil, err
	}
	log.Printf("Block %d %q created: capacity=%d hourly_rate=%d floor=%d vehicle_type=%s",
		block.ID, block.Name, block.Capacity, block.HourlyRate, block.Floor, block.VehicleType)
	return block, nil
}

func validateBlock(b *db.Block) error {
	switch {
	case b.Name == "":
		return apperrors.New(apperrors.KindInvalidInput, "name is required")
	case b.VehicleType == "":
		return apperrors.New(apperrors.KindInvalidInput, "vehicle_type is required")
	case b.Capacity <= 0:
		return apperrors.New(apperrors.KindInvalidInput, fmt.Sprintf("availability must be positive, got %d", b.Capacity))
	case b.Capacity > math.MaxInt32:
		return apperrors.New(apperrors.KindInvalidInput, fmt.Sprintf("availability must be at most %d, got %d", math.MaxInt32, b.Capacity))
	case b.Floor < math.MinInt32 || b.Floor > math.MaxInt32:
		return apperrors.New(apperrors.KindInvalidInput, fmt.Sprintf("floor must be within [%d, %d], got %d", math.MinInt32, math.MaxInt32, b.Floor))
	case b.HourlyRate < 0:
		return apperrors.New(apperrors.KindInvalidInput, fmt.Sprintf("hourly_rate must not be negative, got %d", b.HourlyRate))
	}
	return nil
}

func (s *BlockService) GetBlock(ctx context.Context, id int64) (*db.Block, error) {
	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()
	return s.blocks.FindByID(ctx, id)
}

func (s *BlockService) ListBlocks(ctx context.Context) ([]db.Block, error) {
	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()
	return s.blocks.List(ctx)
}

// ListAvailabilityByVehicleType lists the blocks for a vehicle type in
// creation order with their live availability.
func (s *BlockService) ListAvailabilityByVehicleType(ctx context.Context, vehicleType string) ([]entities.BlockAvailability, error) {
	vehicleType = utils.NormalizeVehicleType(vehicleType)
	if vehicleType == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "vehicle_type is required")
	}

	listCtx, cancel := withStoreTimeout(ctx, s.timeout)
	blocks, err := s.blocks.ListByVehicleType(listCtx, vehicleType)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list blocks for %s: %w", vehicleType, err)
	}

	out := make([]entities.BlockAvailability, 0, len(blocks))
	for _, b := range blocks {
		available, err := s.availability.EffectiveAvailability(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.BlockAvailability{
			Name:         b.Name,
			Availability: available,
			HourlyRate:   b.HourlyRate,
			Floor:        b.Floor,
		})
	}
	return out, nil
}
