package services

import (
	"context"
	"testing"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/pagination"
	"learnhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewCourseService(repositories.NewCourseRepository(db), repositories.NewCategoryRepository(db)), db
}

func TestCourseService_CreateCourse(t *testing.T) {
	svc, db := newCourseService(t)
	ctx := context.Background()
	instructor := testutil.CreateUser(t, db, domain.RoleInstructor).ToPrincipal()
	student := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()

	category := &models.Category{Name: "Databases"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(ctx, category))

	created, err := svc.CreateCourse(ctx, instructor, &CreateCourseInput{
		CategoryID: &category.ID,
		Title:      "  Transactions in Practice ",
		Price:      120,
		MaxSeats:   30,
	})
	require.NoError(t, err)
	assert.Equal(t, "Transactions in Practice", created.Title)
	assert.Equal(t, "draft", created.Status)
	assert.Equal(t, 0, created.EnrolledCount)
	assert.Equal(t, 30, created.SeatsLeft)
	assert.Equal(t, "Databases", created.CategoryName)

	_, err = svc.CreateCourse(ctx, student, &CreateCourseInput{Title: "Nope", MaxSeats: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	missing := uint(404)
	_, err = svc.CreateCourse(ctx, instructor, &CreateCourseInput{Title: "Orphan", CategoryID: &missing})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = svc.CreateCourse(ctx, instructor, &CreateCourseInput{Title: "Odd", Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCourseService_ListAndStatus(t *testing.T) {
	svc, db := newCourseService(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, domain.RoleAdmin).ToPrincipal()

	draft := testutil.CreateCourse(t, db, domain.CourseStatusDraft, 10, 0)
	testutil.CreateCourse(t, db, domain.CourseStatusActive, 10, 0)

	params := pagination.Parse("1", "10")
	listed, err := svc.ListCourses(ctx, ListCoursesInput{}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, listed.Meta.Total)

	listed, err = svc.ListCourses(ctx, ListCoursesInput{Status: "draft"}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, listed.Meta.Total)

	_, err = svc.ListCourses(ctx, ListCoursesInput{Status: "bogus"}, params)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.UpdateStatus(ctx, admin, draft.ID, "published")
	require.NoError(t, err)
	assert.Equal(t, "published", updated.Status)

	listed, err = svc.ListCourses(ctx, ListCoursesInput{}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, listed.Meta.Total)

	_, err = svc.UpdateStatus(ctx, admin, 999, "active")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	_, err = svc.GetCourse(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseService_UpdateStatusOwnership(t *testing.T) {
	svc, db := newCourseService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, domain.RoleInstructor).ToPrincipal()
	other := testutil.CreateUser(t, db, domain.RoleInstructor).ToPrincipal()
	admin := testutil.CreateUser(t, db, domain.RoleAdmin).ToPrincipal()
	student := testutil.CreateUser(t, db, domain.RoleStudent).ToPrincipal()

	created, err := svc.CreateCourse(ctx, owner, &CreateCourseInput{Title: "Owned", MaxSeats: 5})
	require.NoError(t, err)

	tests := []struct {
		name      string
		principal *domain.Principal
		status    string
		wantErr   error
	}{
		{"other instructor", other, "inactive", domain.ErrForbidden},
		{"student", student, "inactive", domain.ErrForbidden},
		{"no principal", nil, "inactive", domain.ErrForbidden},
		{"owner", owner, "published", nil},
		{"admin", admin, "active", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := svc.UpdateStatus(ctx, tt.principal, created.ID, tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, updated.Status)
		})
	}

	course, err := svc.GetCourse(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", course.Status)
}
