package repositories

import (
	"context"
	"errors"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// enrollmentRepository implements EnrollmentRepository interface
type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Enroll runs the seat reservation and the purchase insert in one transaction.
//
// The course row is read with FOR UPDATE so concurrent callers queue on it,
// and the increment is additionally guarded by enrolled_count < max_seats so
// the seat counter can never pass capacity on stores without row locks.
// Any error returned from the closure rolls the whole transaction back.
func (r *enrollmentRepository) Enroll(
	ctx context.Context,
	courseID uint,
	purchase *models.Purchase,
	observe func(domain.EnrollmentState),
) error {
	if observe == nil {
		observe = func(domain.EnrollmentState) {}
	}
	observe(domain.EnrollmentStarted)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", courseID).
			First(&course).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCourseNotFound
			}
			return err
		}

		if err := course.ToDomain().CheckEnrollable(); err != nil {
			return err
		}
		observe(domain.EnrollmentCapacityChecked)

		result := tx.Model(&models.Course{}).
			Where("id = ? AND enrolled_count < max_seats", course.ID).
			UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrCourseFull
		}

		purchase.CourseID = course.ID
		purchase.Amount = course.Price
		return tx.Create(purchase).Error
	})
	if err != nil {
		purchase.ID = 0
		observe(domain.EnrollmentAborted)
		return err
	}

	observe(domain.EnrollmentCommitted)
	return nil
}
