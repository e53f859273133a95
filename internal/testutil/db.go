// Package testutil provides a throwaway relational store and fixtures for
// tests across the codebase.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword is the plain-text password of every fixture user
const TestPassword = "password123"

var emailSeq atomic.Int64

// NewDB opens a migrated SQLite database in a temp dir. The pool holds a
// single connection so concurrent transactions queue instead of failing
// with SQLITE_BUSY.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "learnhub.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user with the given role and TestPassword
func CreateUser(t testing.TB, db *gorm.DB, role domain.Role) *models.User {
	t.Helper()

	hash, err := password.HashWithCost(TestPassword, bcrypt.MinCost)
	require.NoError(t, err)

	n := emailSeq.Add(1)
	user := &models.User{
		Name:     fmt.Sprintf("User %d", n),
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: hash,
		Role:     string(role),
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateCourse inserts a course with an explicit seat state
func CreateCourse(t testing.TB, db *gorm.DB, status domain.CourseStatus, maxSeats, enrolled int) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:         fmt.Sprintf("Course %d", emailSeq.Add(1)),
		Price:         49.90,
		MaxSeats:      maxSeats,
		EnrolledCount: enrolled,
		Status:        string(status),
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

// ReloadCourse reads the current row of a course
func ReloadCourse(t testing.TB, db *gorm.DB, id uint) *models.Course {
	t.Helper()

	var course models.Course
	require.NoError(t, db.First(&course, id).Error)
	return &course
}

// CountPurchases counts purchase rows of a course
func CountPurchases(t testing.TB, db *gorm.DB, courseID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Where("course_id = ?", courseID).Count(&count).Error)
	return count
}

// PurchaseDetails returns a filled-in purchase payload
func PurchaseDetails() domain.PurchaseDetails {
	return domain.PurchaseDetails{
		Purchaser: domain.Purchaser{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+44 20 7946 0000",
			Address:  "12 St James's Square, London",
		},
		PaymentMethod: "card",
		Comments:      "evening cohort please",
	}
}
