package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBlock_Validation(t *testing.T) {
	valid := entities.CreateBlockRequest{Name: "A1", Availability: 2, HourlyRate: 100, Floor: 0, VehicleType: "car"}
	tests := []struct {
		name   string
		mutate func(r *entities.CreateBlockRequest)
	}{
		{"blank name", func(r *entities.CreateBlockRequest) { r.Name = "   " }},
		{"blank vehicle type", func(r *entities.CreateBlockRequest) { r.VehicleType = "" }},
		{"zero availability", func(r *entities.CreateBlockRequest) { r.Availability = 0 }},
		{"negative availability", func(r *entities.CreateBlockRequest) { r.Availability = -3 }},
		{"negative rate", func(r *entities.CreateBlockRequest) { r.HourlyRate = -1 }},
		{"availability above int32", func(r *entities.CreateBlockRequest) { r.Availability = math.MaxInt32 + 1 }},
		{"floor above int32", func(r *entities.CreateBlockRequest) { r.Floor = math.MaxInt32 + 1 }},
		{"floor below int32", func(r *entities.CreateBlockRequest) { r.Floor = math.MinInt32 - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServices(t)
			req := valid
			tt.mutate(&req)
			_, err := s.blocks.CreateBlock(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestCreateBlock_NormalizesAndRejectsDuplicates(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	b, err := s.blocks.CreateBlock(ctx, entities.CreateBlockRequest{
		Name: " A1 ", Availability: 2, HourlyRate: 100, Floor: -1, VehicleType: " Car ",
	})
	require.NoError(t, err)
	assert.Equal(t, "A1", b.Name)
	assert.Equal(t, "car", b.VehicleType)
	assert.NotZero(t, b.ID)

	_, err = s.blocks.CreateBlock(ctx, entities.CreateBlockRequest{
		Name: "A1", Availability: 5, HourlyRate: 1, VehicleType: "bike",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)
}

func TestListAvailabilityByVehicleType_RoundTrip(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.blocks.CreateBlock(ctx, entities.CreateBlockRequest{Name: "A1", Availability: 3, HourlyRate: 150, Floor: 2, VehicleType: "car"})
	require.NoError(t, err)
	_, err = s.blocks.CreateBlock(ctx, entities.CreateBlockRequest{Name: "M1", Availability: 9, HourlyRate: 20, Floor: 0, VehicleType: "motorcycle"})
	require.NoError(t, err)
	_, err = s.blocks.CreateBlock(ctx, entities.CreateBlockRequest{Name: "A2", Availability: 1, HourlyRate: 0, Floor: -1, VehicleType: "car"})
	require.NoError(t, err)

	got, err := s.blocks.ListAvailabilityByVehicleType(ctx, "CAR")
	require.NoError(t, err)
	assert.Equal(t, []entities.BlockAvailability{
		{Name: "A1", Availability: 3, HourlyRate: 150, Floor: 2},
		{Name: "A2", Availability: 1, HourlyRate: 0, Floor: -1},
	}, got)

	none, err := s.blocks.ListAvailabilityByVehicleType(ctx, "truck")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.blocks.ListAvailabilityByVehicleType(ctx, " ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

type failingCountRepo struct {
	repository.ParkingRepository
}

func (failingCountRepo) CountActiveByBlock(ctx context.Context, blockID int64) (int64, error) {
	return 0, apperrors.Wrap(apperrors.KindStoreUnavailable, errors.New("connection reset"), "count active sessions")
}

func TestListAvailabilityByVehicleType_SurfacesCountFailure(t *testing.T) {
	store, mem := repository.NewMemoryBackedStore()
	availability := NewAvailabilityService(failingCountRepo{mem}, time.Second)
	blocks := NewBlockService(store.Blocks, availability, time.Second)

	require.NoError(t, store.Blocks.Create(context.Background(), &db.Block{Name: "A1", Capacity: 1, HourlyRate: 1, VehicleType: "car"}))

	_, err := blocks.ListAvailabilityByVehicleType(context.Background(), "car")
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.True(t, apperrors.Retryable(err))
}

func TestGetBlock_Unknown(t *testing.T) {
	s := newServices(t)
	_, err := s.blocks.GetBlock(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUnknownBlock)
}

func TestCreateBlock_AcceptsInt32Bounds(t *testing.T) {
	s := newServices(t)
	b, err := s.blocks.CreateBlock(context.Background(), entities.CreateBlockRequest{
		Name: "deep", Availability: math.MaxInt32, HourlyRate: 1, Floor: math.MinInt32, VehicleType: "car",
	})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, b.Capacity)
	assert.Equal(t, math.MinInt32, b.Floor)
}
