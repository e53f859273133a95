package repositories

import (
	"context"

	"learnhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// purchaseRepository implements PurchaseRepository interface
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// ListByUser lists the purchases made by one user, newest first
func (r *purchaseRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Purchase, int64, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID), offset, limit)
}

// ListByCourse lists the purchases of one course, newest first
func (r *purchaseRepository) ListByCourse(ctx context.Context, courseID uint, offset, limit int) ([]*models.Purchase, int64, error) {
	return r.list(r.db.WithContext(ctx).Where("course_id = ?", courseID), offset, limit)
}

func (r *purchaseRepository) list(scope *gorm.DB, offset, limit int) ([]*models.Purchase, int64, error) {
	var purchases []*models.Purchase
	var total int64

	if err := scope.Session(&gorm.Session{}).Model(&models.Purchase{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scope.Session(&gorm.Session{}).
		Preload("Course").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&purchases).Error
	if err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}
