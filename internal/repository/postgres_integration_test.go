package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// openTestStore returns a Postgres-backed store over a freshly migrated,
// emptied schema. Skipped unless DATABASE_URL is set.
func openTestStore(t *testing.T, driver string) *Store {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	sqlDB, err := db.Open(driver, dsn, db.PoolOptions{MaxOpenConns: 20})
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store := NewPostgresStore(sqlDB, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, store.Admin.InitSchema(ctx))
	_, err = sqlDB.ExecContext(ctx, `TRUNCATE parking, block RESTART IDENTITY`)
	require.NoError(t, err)
	return store
}

func TestPostgres_BlockRoundTrip(t *testing.T) {
	store := openTestStore(t, db.DriverPQ)
	ctx := context.Background()

	b := db.Block{Name: "A1", Capacity: 3, HourlyRate: 250, Floor: -1, VehicleType: "car"}
	require.NoError(t, store.Blocks.Create(ctx, &b))
	assert.NotZero(t, b.ID)

	dup := db.Block{Name: "A1", Capacity: 1, HourlyRate: 1, VehicleType: "car"}
	assert.ErrorIs(t, store.Blocks.Create(ctx, &dup), apperrors.ErrDuplicateName)

	got, err := store.Blocks.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, *got)

	_, err = store.Blocks.FindByID(ctx, b.ID+100)
	assert.ErrorIs(t, err, apperrors.ErrUnknownBlock)

	list, err := store.Blocks.ListByVehicleType(ctx, "car")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0])
}

func TestPostgres_ConcurrentAdmitNeverExceedsCapacity(t *testing.T) {
	for _, driver := range []string{db.DriverPQ, db.DriverPGX} {
		t.Run(driver, func(t *testing.T) {
			store := openTestStore(t, driver)
			ctx := context.Background()

			const capacity, callers = 3, 25
			b := db.Block{Name: "race-" + driver, Capacity: capacity, HourlyRate: 100, Floor: 0, VehicleType: "car"}
			require.NoError(t, store.Blocks.Create(ctx, &b))

			var admitted, full atomic.Int64
			var g errgroup.Group
			for i := 0; i < callers; i++ {
				vehicle := fmt.Sprintf("V%d", i)
				g.Go(func() error {
					s := db.ParkingSession{VehicleID: vehicle, BlockID: b.ID, Checkin: time.Now().UTC().Format(time.RFC3339)}
					err := store.Parking.Admit(ctx, &s)
					switch {
					case err == nil:
						admitted.Add(1)
					case errors.Is(err, apperrors.ErrBlockFull):
						full.Add(1)
					default:
						return err
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())

			assert.Equal(t, int64(capacity), admitted.Load())
			assert.Equal(t, int64(callers-capacity), full.Load())
			n, err := store.Parking.CountActiveByBlock(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(capacity), n)
		})
	}
}

func TestPostgres_CheckoutLifecycle(t *testing.T) {
	store := openTestStore(t, db.DriverPQ)
	ctx := context.Background()

	b := db.Block{Name: "B1", Capacity: 2, HourlyRate: 100, Floor: 2, VehicleType: "car"}
	require.NoError(t, store.Blocks.Create(ctx, &b))

	s := db.ParkingSession{VehicleID: "V1", BlockID: b.ID, Checkin: "2024-05-01T08:00:00Z"}
	require.NoError(t, store.Parking.Admit(ctx, &s))

	again := db.ParkingSession{VehicleID: "V1", BlockID: b.ID, Checkin: "2024-05-01T08:05:00Z"}
	assert.ErrorIs(t, store.Parking.Admit(ctx, &again), apperrors.ErrAlreadyParked)

	active, err := store.Parking.FindActiveByVehicle(ctx, "V1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, s.ID, active[0].ID)
	assert.False(t, active[0].Checkout.Valid)

	require.NoError(t, store.Parking.Close(ctx, s.ID, "2024-05-01T10:10:00Z"))
	assert.ErrorIs(t, store.Parking.Close(ctx, s.ID, "2024-05-01T11:00:00Z"), apperrors.ErrNoActiveSession)

	n, err := store.Parking.CountActiveByBlock(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgres_InitSchemaHonorsContext(t *testing.T) {
	store := openTestStore(t, db.DriverPQ)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.Admin.InitSchema(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, store.Admin.InitSchema(context.Background()))
}
