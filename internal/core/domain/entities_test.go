package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Allows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		have     Role
		required Role
		want     bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleInstructor, true},
		{RoleAdmin, RoleStudent, true},
		{RoleInstructor, RoleAdmin, false},
		{RoleInstructor, RoleInstructor, true},
		{RoleInstructor, RoleStudent, true},
		{RoleStudent, RoleInstructor, false},
		{RoleStudent, RoleStudent, true},
		{Role("root"), RoleStudent, false},
		{RoleAdmin, Role("root"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.have)+"->"+string(tt.required), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.have.Allows(tt.required))
		})
	}
}

func TestPrincipal_RequiresRole(t *testing.T) {
	t.Parallel()

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.RequiresRole(RoleStudent))

	p := &Principal{ID: 1, Role: RoleInstructor}
	assert.True(t, p.RequiresRole(RoleStudent))
	assert.False(t, p.RequiresRole(RoleAdmin))
}

func TestCourse_CheckEnrollable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		course Course
		want   error
	}{
		{"active with seats", Course{Status: CourseStatusActive, MaxSeats: 2, EnrolledCount: 1}, nil},
		{"published with seats", Course{Status: CourseStatusPublished, MaxSeats: 1}, nil},
		{"active but full", Course{Status: CourseStatusActive, MaxSeats: 5, EnrolledCount: 5}, ErrCourseFull},
		{"zero capacity", Course{Status: CourseStatusActive}, ErrCourseFull},
		{"draft with seats", Course{Status: CourseStatusDraft, MaxSeats: 10}, ErrCourseNotEnrollable},
		{"draft and full", Course{Status: CourseStatusDraft, MaxSeats: 1, EnrolledCount: 1}, ErrCourseNotEnrollable},
		{"inactive", Course{Status: CourseStatusInactive, MaxSeats: 10}, ErrCourseNotEnrollable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.course.CheckEnrollable(), tt.want)
			if tt.want == nil {
				assert.NoError(t, tt.course.CheckEnrollable())
			}
		})
	}
}

func TestCourse_SeatsLeft(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, Course{MaxSeats: 5, EnrolledCount: 2}.SeatsLeft())
	assert.Equal(t, 0, Course{MaxSeats: 5, EnrolledCount: 5}.SeatsLeft())
	assert.Equal(t, 0, Course{MaxSeats: 5, EnrolledCount: 7}.SeatsLeft())
}

func TestIsIdentityError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsIdentityError(ErrUnauthenticated))
	assert.True(t, IsIdentityError(ErrInvalidToken))
	assert.True(t, IsIdentityError(ErrTokenExpired))
	assert.False(t, IsIdentityError(ErrCourseFull))
	assert.False(t, IsIdentityError(nil))
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	p := &Principal{ID: 7, Role: RoleStudent}
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Same(t, p, got)
}
