package services

import (
	"context"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/pagination"
)

// PurchaseService exposes read access to purchase records
type PurchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	courseRepo   repositories.CourseRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repositories.PurchaseRepository,
	courseRepo repositories.CourseRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		courseRepo:   courseRepo,
	}
}

// ListMine lists purchases made by principal
func (s *PurchaseService) ListMine(ctx context.Context, principal *domain.Principal, params *pagination.Params) (*pagination.Response, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}

	purchases, total, err := s.purchaseRepo.ListByUser(ctx, principal.ID, params.Offset, params.Limit)
	if err != nil {
		return nil, storeError(err)
	}
	return pagination.NewResponse(toPurchaseResponses(purchases), params, total), nil
}

// ListByCourse lists purchases of one course
func (s *PurchaseService) ListByCourse(ctx context.Context, courseID uint, params *pagination.Params) (*pagination.Response, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, notFoundOr(err, domain.ErrCourseNotFound)
	}

	purchases, total, err := s.purchaseRepo.ListByCourse(ctx, courseID, params.Offset, params.Limit)
	if err != nil {
		return nil, storeError(err)
	}
	return pagination.NewResponse(toPurchaseResponses(purchases), params, total), nil
}

func toPurchaseResponses(purchases []*models.Purchase) []*models.PurchaseResponse {
	items := make([]*models.PurchaseResponse, len(purchases))
	for i, p := range purchases {
		items[i] = p.ToResponse()
	}
	return items
}
