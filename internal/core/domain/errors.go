package domain

import "errors"

// Identity errors
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
)

// Enrollment errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseNotEnrollable = errors.New("course is not open for enrollment")
	ErrCourseFull          = errors.New("course is full")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// Common errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrCategoryNotFound = errors.New("category not found")
)

// IsIdentityError reports whether err is one of the credential failures that
// must share a single external message.
func IsIdentityError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired)
}
