package services

import (
	"context"

	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// CapacityAuditService periodically compares seat counters with purchase
// rows. It only reports; it never repairs.
type CapacityAuditService struct {
	courseRepo repositories.CourseRepository
	cron       *cron.Cron
	log        zerolog.Logger
}

// NewCapacityAuditService creates a new capacity audit service
func NewCapacityAuditService(courseRepo repositories.CourseRepository, log zerolog.Logger) *CapacityAuditService {
	return &CapacityAuditService{
		courseRepo: courseRepo,
		cron:       cron.New(),
		log:        log.With().Str("component", "capacity_audit").Logger(),
	}
}

// Start schedules the audit and starts the cron scheduler
func (s *CapacityAuditService) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.log.Warn().Err(err).Msg("capacity audit failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("schedule", schedule).Msg("capacity audit started")
	return nil
}

// Stop stops the scheduler and waits for a running audit to finish
func (s *CapacityAuditService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("capacity audit stopped")
}

// RunOnce performs a single audit pass and logs every drifted course
func (s *CapacityAuditService) RunOnce(ctx context.Context) ([]domain.CapacityDrift, error) {
	drift, err := s.courseRepo.FindCapacityDrift(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	for _, d := range drift {
		s.log.Warn().
			Uint("course_id", d.CourseID).
			Int("enrolled_count", d.EnrolledCount).
			Int("max_seats", d.MaxSeats).
			Int("purchase_count", d.PurchaseCount).
			Msg("capacity drift detected")
	}
	if len(drift) == 0 {
		s.log.Debug().Msg("capacity audit clean")
	}
	return drift, nil
}
