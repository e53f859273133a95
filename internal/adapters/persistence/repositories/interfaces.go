package repositories

import (
	"context"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// CourseFilter narrows catalog listings
type CourseFilter struct {
	CategoryID *uint
	Statuses   []string
}

// CourseRepository defines course repository interface.
// It never writes enrolled_count; see EnrollmentRepository.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filter CourseFilter, offset, limit int) ([]*models.Course, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	FindCapacityDrift(ctx context.Context) ([]domain.CapacityDrift, error)
}

// PurchaseRepository defines read access to purchases
type PurchaseRepository interface {
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Purchase, int64, error)
	ListByCourse(ctx context.Context, courseID uint, offset, limit int) ([]*models.Purchase, int64, error)
}

// EnrollmentRepository owns the seat counter and purchase inserts
type EnrollmentRepository interface {
	// Enroll reserves one seat in the course and inserts purchase in a single
	// transaction. On success purchase.ID, CourseID and Amount are populated.
	Enroll(ctx context.Context, courseID uint, purchase *models.Purchase, observe func(domain.EnrollmentState)) error
}
