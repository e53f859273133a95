package services

import (
	"context"
	"errors"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EnrollmentService reserves course seats and records purchases
type EnrollmentService struct {
	enrollRepo   repositories.EnrollmentRepository
	log          zerolog.Logger
	newReference func() string
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollRepo repositories.EnrollmentRepository, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollRepo:   enrollRepo,
		log:          log.With().Str("component", "enrollment").Logger(),
		newReference: uuid.NewString,
	}
}

// Enroll reserves one seat in courseID for principal and records the purchase.
// Either both writes are committed or neither is. CourseNotFound,
// CourseNotEnrollable and CourseFull are returned as is; every other failure
// is reported as StoreUnavailable and is safe to retry.
func (s *EnrollmentService) Enroll(
	ctx context.Context,
	principal *domain.Principal,
	courseID uint,
	details domain.PurchaseDetails,
) (*domain.PurchaseRecord, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}

	reference := s.newReference()
	log := s.log.With().
		Str("reference", reference).
		Uint("course_id", courseID).
		Uint("user_id", principal.ID).
		Logger()

	purchase := models.NewPurchase(reference, principal.ID, details)
	err := s.enrollRepo.Enroll(ctx, courseID, purchase, func(state domain.EnrollmentState) {
		log.Debug().Str("state", string(state)).Msg("enrollment transition")
	})
	if err != nil {
		if isEnrollmentRejection(err) {
			log.Info().Err(err).Msg("enrollment rejected")
			return nil, err
		}
		log.Error().Err(err).Msg("enrollment failed")
		return nil, storeError(err)
	}

	log.Info().Uint("purchase_id", purchase.ID).Float64("amount", purchase.Amount).Msg("enrollment committed")
	return purchase.ToDomain(), nil
}

func isEnrollmentRejection(err error) bool {
	return errors.Is(err, domain.ErrCourseNotFound) ||
		errors.Is(err, domain.ErrCourseNotEnrollable) ||
		errors.Is(err, domain.ErrCourseFull)
}
