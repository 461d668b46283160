package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	"parkinglot/internal/repository"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type services struct {
	mem          *repository.MemoryStore
	clock        *fakeClock
	availability *AvailabilityService
	blocks       *BlockService
	reservations *ReservationService
	checkout     *CheckoutService
}

func newServices(t *testing.T) *services {
	t.Helper()
	store, mem := repository.NewMemoryBackedStore()
	clock := newFakeClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	availability := NewAvailabilityService(store.Parking, time.Second)
	return &services{
		mem:          mem,
		clock:        clock,
		availability: availability,
		blocks:       NewBlockService(store.Blocks, availability, time.Second),
		reservations: NewReservationService(store.Parking, clock, time.Second),
		checkout:     NewCheckoutService(store.Parking, store.Blocks, clock, time.Second),
	}
}

func (s *services) mustCreateBlock(t *testing.T, name string, capacity int, rate int64) *db.Block {
	t.Helper()
	b, err := s.blocks.CreateBlock(context.Background(), entities.CreateBlockRequest{
		Name:         name,
		Availability: capacity,
		HourlyRate:   rate,
		Floor:        1,
		VehicleType:  "car",
	})
	require.NoError(t, err)
	return b
}
