package repository

import (
	"context"
	"fmt"
	"sync"

	"parkinglot/internal/db"
	apperrors "parkinglot/internal/errors"
)

// MemoryStore keeps blocks and sessions in process memory. It satisfies every
// repository interface and serializes all access with one mutex, which makes
// Admit atomic. Used for tests and for DB_DRIVER=memory.
type MemoryStore struct {
	mu            sync.Mutex
	blocks        []db.Block
	sessions      []db.ParkingSession
	nextBlockID   int64
	nextSessionID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryBackedStore returns a Store whose repositories all share one MemoryStore.
func NewMemoryBackedStore() (*Store, *MemoryStore) {
	m := NewMemoryStore()
	return &Store{Blocks: m, Parking: m, Admin: m}, m
}

func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.KindStoreUnavailable, err, op)
	}
	return nil
}

func (m *MemoryStore) Create(ctx context.Context, b *db.Block) error {
	if err := ctxErr(ctx, "create block"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.blocks {
		if existing.Name == b.Name {
			return apperrors.New(apperrors.KindDuplicateName, fmt.Sprintf("block name %q already exists", b.Name))
		}
	}
	m.nextBlockID++
	b.ID = m.nextBlockID
	m.blocks = append(m.blocks, *b)
	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id int64) (*db.Block, error) {
	if err := ctxErr(ctx, "find block"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.block(id)
	if !ok {
		return nil, apperrors.New(apperrors.KindUnknownBlock, fmt.Sprintf("block %d not found", id))
	}
	return &b, nil
}

func (m *MemoryStore) ListByVehicleType(ctx context.Context, vehicleType string) ([]db.Block, error) {
	if err := ctxErr(ctx, "list blocks by vehicle type"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []db.Block{}
	for _, b := range m.blocks {
		if b.VehicleType == vehicleType {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]db.Block, error) {
	if err := ctxErr(ctx, "list blocks"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]db.Block{}, m.blocks...), nil
}

func (m *MemoryStore) CountActiveByBlock(ctx context.Context, blockID int64) (int64, error) {
	if err := ctxErr(ctx, "count active sessions"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.activeInBlock(blockID), nil
}

func (m *MemoryStore) Admit(ctx context.Context, s *db.ParkingSession) error {
	if err := ctxErr(ctx, "admit"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.block(s.BlockID)
	if !ok {
		return apperrors.New(apperrors.KindUnknownBlock, fmt.Sprintf("block %d not found", s.BlockID))
	}
	for _, existing := range m.sessions {
		if existing.VehicleID == s.VehicleID && existing.Active() {
			return apperrors.New(apperrors.KindAlreadyParked, fmt.Sprintf("vehicle %s already has an active session", s.VehicleID))
		}
	}
	active := m.activeInBlock(b.ID)
	if active >= int64(b.Capacity) {
		return apperrors.New(apperrors.KindBlockFull, fmt.Sprintf("block %d is full (%d/%d)", b.ID, active, b.Capacity))
	}
	m.nextSessionID++
	s.ID = m.nextSessionID
	m.sessions = append(m.sessions, *s)
	return nil
}

func (m *MemoryStore) FindActiveByVehicle(ctx context.Context, vehicleID string) ([]db.ParkingSession, error) {
	if err := ctxErr(ctx, "find active sessions"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []db.ParkingSession
	for _, s := range m.sessions {
		if s.VehicleID == vehicleID && s.Active() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) Close(ctx context.Context, sessionID int64, checkout string) error {
	if err := ctxErr(ctx, "close session"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sessions {
		if m.sessions[i].ID == sessionID && m.sessions[i].Active() {
			m.sessions[i].Checkout.SetValid(checkout)
			return nil
		}
	}
	return apperrors.New(apperrors.KindNoActiveSession, fmt.Sprintf("session %d is no longer active", sessionID))
}

func (m *MemoryStore) InitSchema(ctx context.Context) error {
	return ctxErr(ctx, "initiate database")
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctxErr(ctx, "ping")
}

// Sessions returns a copy of every session ever admitted, closed ones included.
func (m *MemoryStore) Sessions() []db.ParkingSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db.ParkingSession{}, m.sessions...)
}

// InsertSession stores s as-is, bypassing admission control. It exists to
// reproduce data written by older releases, such as duplicate active sessions.
func (m *MemoryStore) InsertSession(s db.ParkingSession) db.ParkingSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSessionID++
	s.ID = m.nextSessionID
	m.sessions = append(m.sessions, s)
	return s
}

func (m *MemoryStore) block(id int64) (db.Block, bool) {
	for _, b := range m.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return db.Block{}, false
}

func (m *MemoryStore) activeInBlock(blockID int64) int64 {
	var n int64
	for _, s := range m.sessions {
		if s.BlockID == blockID && s.Active() {
			n++
		}
	}
	return n
}
