package repository

import (
	"context"

	"parkinglot/internal/db"
)

type BlockRepository interface {
	// Create inserts b and sets b.ID. A taken name yields ErrDuplicateName.
	Create(ctx context.Context, b *db.Block) error
	FindByID(ctx context.Context, id int64) (*db.Block, error)
	ListByVehicleType(ctx context.Context, vehicleType string) ([]db.Block, error)
	List(ctx context.Context) ([]db.Block, error)
}

type ParkingRepository interface {
	CountActiveByBlock(ctx context.Context, blockID int64) (int64, error)
	// Admit inserts s only if its block exists, has a free space and the
	// vehicle has no active session. The check and the insert are atomic
	// with respect to other Admit calls. Sets s.ID on success.
	Admit(ctx context.Context, s *db.ParkingSession) error
	// FindActiveByVehicle returns every session of vehicleID with no checkout, oldest first.
	FindActiveByVehicle(ctx context.Context, vehicleID string) ([]db.ParkingSession, error)
	// Close records checkout on an active session. A session that is
	// already closed yields ErrNoActiveSession.
	Close(ctx context.Context, sessionID int64, checkout string) error
}

type AdminRepository interface {
	InitSchema(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Store bundles the repositories the services run against.
type Store struct {
	Blocks  BlockRepository
	Parking ParkingRepository
	Admin   AdminRepository
}
