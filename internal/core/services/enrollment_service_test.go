package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/logger"
	"learnhub/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(t *testing.T) (*EnrollmentService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewEnrollmentService(repositories.NewEnrollmentRepository(db), logger.Nop()), db
}

func TestEnrollmentService_Enroll(t *testing.T) {
	svc, db := newEnrollmentService(t)
	user := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 10, 0)

	record, err := svc.Enroll(context.Background(), user.ToPrincipal(), course.ID, testutil.PurchaseDetails())
	require.NoError(t, err)

	assert.NotZero(t, record.ID)
	_, err = uuid.Parse(record.Reference)
	assert.NoError(t, err)
	assert.Equal(t, course.ID, record.CourseID)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, 49.90, record.Amount)
	assert.Equal(t, testutil.PurchaseDetails().Purchaser, record.Purchaser)
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
}

func TestEnrollmentService_Scenarios(t *testing.T) {
	svc, db := newEnrollmentService(t)
	principal := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()

	full := testutil.CreateCourse(t, db, domain.CourseStatusActive, 5, 5)
	draft := testutil.CreateCourse(t, db, domain.CourseStatusDraft, 50, 0)

	tests := []struct {
		name     string
		courseID uint
		wantErr  error
		enrolled int
	}{
		{"full course rejects", full.ID, domain.ErrCourseFull, 5},
		{"draft course rejects regardless of capacity", draft.ID, domain.ErrCourseNotEnrollable, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := svc.Enroll(context.Background(), principal, tt.courseID, testutil.PurchaseDetails())
			assert.Nil(t, record)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.enrolled, testutil.ReloadCourse(t, db, tt.courseID).EnrolledCount)
			assert.EqualValues(t, 0, testutil.CountPurchases(t, db, tt.courseID))
		})
	}

	_, err := svc.Enroll(context.Background(), principal, 31337, testutil.PurchaseDetails())
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestEnrollmentService_RequiresPrincipal(t *testing.T) {
	svc, db := newEnrollmentService(t)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 1, 0)

	_, err := svc.Enroll(context.Background(), nil, course.ID, testutil.PurchaseDetails())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 0, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
}

func TestEnrollmentService_TwoBuyersOneSeat(t *testing.T) {
	svc, db := newEnrollmentService(t)
	a := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()
	b := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 1, 0)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, p := range []*domain.Principal{a, b} {
		wg.Add(1)
		go func(i int, p *domain.Principal) {
			defer wg.Done()
			_, results[i] = svc.Enroll(context.Background(), p, course.ID, testutil.PurchaseDetails())
		}(i, p)
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		if err == nil {
			won++
		} else if errors.Is(err, domain.ErrCourseFull) {
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
}

func TestEnrollmentService_DuplicatePurchasesAreAllowed(t *testing.T) {
	svc, db := newEnrollmentService(t)
	principal := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 3, 0)

	first, err := svc.Enroll(context.Background(), principal, course.ID, testutil.PurchaseDetails())
	require.NoError(t, err)
	second, err := svc.Enroll(context.Background(), principal, course.ID, testutil.PurchaseDetails())
	require.NoError(t, err)

	assert.NotEqual(t, first.Reference, second.Reference)
	assert.Equal(t, 2, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
}

func TestEnrollmentService_StoreFailureIsRetrySafe(t *testing.T) {
	svc, db := newEnrollmentService(t)
	principal := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 3, 0)

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_purchase", func(tx *gorm.DB) {
		if tx.Statement.Table == "purchases" {
			_ = tx.AddError(errors.New("constraint violated"))
		}
	}))

	_, err := svc.Enroll(context.Background(), principal, course.ID, testutil.PurchaseDetails())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, 0, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, db, course.ID))

	require.NoError(t, db.Callback().Create().Remove("test:fail_purchase"))

	_, err = svc.Enroll(context.Background(), principal, course.ID, testutil.PurchaseDetails())
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
}
