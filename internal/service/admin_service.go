package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkinglot/internal/repository"
)

// schema migrations can take longer than a single store call
const initSchemaTimeout = 60 * time.Second

type AdminService struct {
	adminRepo repository.AdminRepository
	timeout   time.Duration
}

func NewAdminService(adminRepo repository.AdminRepository, timeout time.Duration) *AdminService {
	return &AdminService{adminRepo: adminRepo, timeout: timeout}
}

// InitDatabase applies the schema migrations. Running it again is a no-op.
func (s *AdminService) InitDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, initSchemaTimeout)
	defer cancel()

	log.Println("Applying database schema...")
	if err := s.adminRepo.InitSchema(ctx); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	log.Println("Database schema is up to date")
	return nil
}

func (s *AdminService) Health(ctx context.Context) error {
	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()
	return s.adminRepo.Ping(ctx)
}
