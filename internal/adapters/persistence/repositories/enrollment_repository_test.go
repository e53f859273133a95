package repositories

import (
	"context"
	"testing"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/core/domain"
	"learnhub/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchase(userID uint) *models.Purchase {
	return models.NewPurchase(uuid.NewString(), userID, testutil.PurchaseDetails())
}

func TestEnrollmentRepository_Enroll(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	user := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 3, 1)

	var states []domain.EnrollmentState
	purchase := newPurchase(user.ID)
	err := repo.Enroll(context.Background(), course.ID, purchase, func(s domain.EnrollmentState) {
		states = append(states, s)
	})
	require.NoError(t, err)

	assert.NotZero(t, purchase.ID)
	assert.Equal(t, course.ID, purchase.CourseID)
	assert.Equal(t, course.Price, purchase.Amount)
	assert.Equal(t, []domain.EnrollmentState{
		domain.EnrollmentStarted,
		domain.EnrollmentCapacityChecked,
		domain.EnrollmentCommitted,
	}, states)

	assert.Equal(t, 2, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
	assert.EqualValues(t, 1, testutil.CountPurchases(t, db, course.ID))
}

func TestEnrollmentRepository_Rejections(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	user := testutil.CreateUser(t, db, domain.RoleStudent)

	full := testutil.CreateCourse(t, db, domain.CourseStatusActive, 2, 2)
	draft := testutil.CreateCourse(t, db, domain.CourseStatusDraft, 10, 0)
	inactive := testutil.CreateCourse(t, db, domain.CourseStatusInactive, 10, 0)

	tests := []struct {
		name     string
		courseID uint
		wantErr  error
		enrolled int
	}{
		{"full course", full.ID, domain.ErrCourseFull, 2},
		{"draft course", draft.ID, domain.ErrCourseNotEnrollable, 0},
		{"inactive course", inactive.ID, domain.ErrCourseNotEnrollable, 0},
		{"missing course", 9999, domain.ErrCourseNotFound, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var states []domain.EnrollmentState
			purchase := newPurchase(user.ID)
			err := repo.Enroll(context.Background(), tt.courseID, purchase, func(s domain.EnrollmentState) {
				states = append(states, s)
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, purchase.ID)
			assert.Equal(t, domain.EnrollmentAborted, states[len(states)-1])
			assert.NotContains(t, states, domain.EnrollmentCommitted)
			assert.EqualValues(t, 0, testutil.CountPurchases(t, db, tt.courseID))
			if tt.enrolled >= 0 {
				assert.Equal(t, tt.enrolled, testutil.ReloadCourse(t, db, tt.courseID).EnrolledCount)
			}
		})
	}
}

func TestEnrollmentRepository_NilObserver(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	user := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusPublished, 1, 0)

	require.NoError(t, repo.Enroll(context.Background(), course.ID, newPurchase(user.ID), nil))
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
}
