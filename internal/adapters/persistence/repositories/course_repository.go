package repositories

import (
	"context"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/core/domain"

	"gorm.io/gorm"
)

// courseRepository implements CourseRepository interface
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create creates a new course. EnrolledCount always starts at zero.
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	course.EnrolledCount = 0
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID gets a course by ID with its category
func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// List lists courses with pagination
func (r *courseRepository) List(ctx context.Context, filter CourseFilter, offset, limit int) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Course{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// UpdateStatus changes the publication status of a course
func (r *courseRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindCapacityDrift returns courses whose seat counter disagrees with the
// number of purchase rows, or exceeds capacity
func (r *courseRepository) FindCapacityDrift(ctx context.Context) ([]domain.CapacityDrift, error) {
	type row struct {
		CourseID      uint
		EnrolledCount int
		MaxSeats      int
		PurchaseCount int
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("courses AS c").
		Select("c.id AS course_id, c.enrolled_count, c.max_seats, COUNT(p.id) AS purchase_count").
		Joins("LEFT JOIN purchases AS p ON p.course_id = c.id").
		Where("c.deleted_at IS NULL").
		Group("c.id, c.enrolled_count, c.max_seats").
		Having("COUNT(p.id) <> c.enrolled_count OR c.enrolled_count > c.max_seats OR c.enrolled_count < 0").
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	drift := make([]domain.CapacityDrift, len(rows))
	for i, rw := range rows {
		drift[i] = domain.CapacityDrift{
			CourseID:      rw.CourseID,
			EnrolledCount: rw.EnrolledCount,
			MaxSeats:      rw.MaxSeats,
			PurchaseCount: rw.PurchaseCount,
		}
	}
	return drift, nil
}
