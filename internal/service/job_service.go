package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

type BlockOccupancy struct {
	BlockID   int64
	Name      string
	Capacity  int
	Active    int64
	Available int64
}

type JobService struct {
	blocks       *BlockService
	availability *AvailabilityService
}

func NewJobService(blocks *BlockService, availability *AvailabilityService) *JobService {
	return &JobService{blocks: blocks, availability: availability}
}

// ReportOccupancy logs the occupancy of every block and flags blocks whose
// active sessions exceed their capacity.
func (s *JobService) ReportOccupancy(ctx context.Context) ([]BlockOccupancy, error) {
	log.Println("Cron Job: Reporting block occupancy...")

	blocks, err := s.blocks.ListBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("cron job: failed to list blocks: %w", err)
	}
	if len(blocks) == 0 {
		log.Println("Cron Job: No blocks registered.")
		return nil, nil
	}

	report := make([]BlockOccupancy, 0, len(blocks))
	for _, b := range blocks {
		active, err := s.availability.ActiveSessionCount(ctx, b.ID)
		if err != nil {
			return report, fmt.Errorf("cron job: %w", err)
		}
		row := BlockOccupancy{
			BlockID:   b.ID,
			Name:      b.Name,
			Capacity:  b.Capacity,
			Active:    active,
			Available: int64(b.Capacity) - active,
		}
		if row.Available < 0 {
			log.Printf("ALERT: block %d %q is over capacity: %d active for %d slots", b.ID, b.Name, active, b.Capacity)
		} else {
			log.Printf("Cron Job: block %d %q %d/%d occupied", b.ID, b.Name, active, b.Capacity)
		}
		report = append(report, row)
	}
	return report, nil
}

// Schedule registers the occupancy report on a new cron scheduler. The caller
// starts and stops it.
func (s *JobService) Schedule(ctx context.Context, expr string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if _, err := s.ReportOccupancy(ctx); err != nil {
			log.Printf("Cron Job: occupancy report failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid OCCUPANCY_REPORT_CRON %q: %w", expr, err)
	}
	return c, nil
}
