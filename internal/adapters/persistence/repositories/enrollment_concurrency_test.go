package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/core/domain"
	"learnhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnrollmentRepository_LastSeatRace(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	alice := testutil.CreateUser(t, db, domain.RoleStudent)
	bob := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 1, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []*models.User{alice, bob} {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			errs[i] = repo.Enroll(context.Background(), course.ID, newPurchase(userID), nil)
		}(i, user.ID)
	}
	wg.Wait()

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrCourseFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
	assert.EqualValues(t, 1, testutil.CountPurchases(t, db, course.ID))
}

func TestEnrollmentRepository_CapacityUnderLoad(t *testing.T) {
	const (
		attempts = 20
		seats    = 5
	)

	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	course := testutil.CreateCourse(t, db, domain.CourseStatusPublished, seats, 0)

	users := make([]*models.User, attempts)
	for i := range users {
		users[i] = testutil.CreateUser(t, db, domain.RoleStudent)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for _, user := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			err := repo.Enroll(context.Background(), course.ID, newPurchase(userID), nil)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrCourseFull)
				return
			}
			mu.Lock()
			successes++
			mu.Unlock()
		}(user.ID)
	}
	wg.Wait()

	assert.Equal(t, seats, successes)
	reloaded := testutil.ReloadCourse(t, db, course.ID)
	assert.Equal(t, successes, reloaded.EnrolledCount)
	assert.LessOrEqual(t, reloaded.EnrolledCount, reloaded.MaxSeats)
	assert.EqualValues(t, seats, testutil.CountPurchases(t, db, course.ID))
}

func TestEnrollmentRepository_PurchaseInsertFailureRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	user := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 3, 1)

	boom := errors.New("disk full")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_purchase", func(tx *gorm.DB) {
		if tx.Statement.Table == "purchases" {
			_ = tx.AddError(boom)
		}
	}))

	var states []domain.EnrollmentState
	purchase := newPurchase(user.ID)
	err := repo.Enroll(context.Background(), course.ID, purchase, func(s domain.EnrollmentState) {
		states = append(states, s)
	})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, purchase.ID)
	assert.Equal(t, []domain.EnrollmentState{
		domain.EnrollmentStarted,
		domain.EnrollmentCapacityChecked,
		domain.EnrollmentAborted,
	}, states)
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, db, course.ID))
}

func TestEnrollmentRepository_CancelledContext(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	user := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 3, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Enroll(ctx, course.ID, newPurchase(user.ID), nil)
	assert.Error(t, err)
	assert.Equal(t, 0, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, db, course.ID))
}

func TestEnrollmentRepository_SeatTakenAfterLockedRead(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEnrollmentRepository(db)
	user := testutil.CreateUser(t, db, domain.RoleStudent)
	course := testutil.CreateCourse(t, db, domain.CourseStatusActive, 3, 1)

	// Fill the course inside the transaction, after the row was read but
	// before the guarded increment runs.
	var drained bool
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:drain_seats", func(tx *gorm.DB) {
		if drained || tx.Statement.Table != "courses" {
			return
		}
		drained = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE courses SET enrolled_count = max_seats WHERE id = ?", course.ID).Error)
	}))

	var states []domain.EnrollmentState
	purchase := newPurchase(user.ID)
	err := repo.Enroll(context.Background(), course.ID, purchase, func(s domain.EnrollmentState) {
		states = append(states, s)
	})
	require.NoError(t, db.Callback().Query().Remove("test:drain_seats"))

	assert.True(t, drained)
	assert.ErrorIs(t, err, domain.ErrCourseFull)
	assert.Zero(t, purchase.ID)
	assert.Equal(t, []domain.EnrollmentState{
		domain.EnrollmentStarted,
		domain.EnrollmentCapacityChecked,
		domain.EnrollmentAborted,
	}, states)
	assert.Equal(t, 1, testutil.ReloadCourse(t, db, course.ID).EnrolledCount)
	assert.EqualValues(t, 0, testutil.CountPurchases(t, db, course.ID))
}
