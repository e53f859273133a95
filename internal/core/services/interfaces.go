package services

import (
	"context"

	"learnhub/internal/core/domain"
)

// Note: AuthService implementation is in auth_service.go
// Note: EnrollmentService implementation is in enrollment_service.go

// Authenticator resolves a bearer credential into a principal
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// Enroller reserves a seat and records the purchase atomically
type Enroller interface {
	Enroll(ctx context.Context, principal *domain.Principal, courseID uint, details domain.PurchaseDetails) (*domain.PurchaseRecord, error)
}

var (
	_ Authenticator = (*AuthService)(nil)
	_ Enroller      = (*EnrollmentService)(nil)
)
