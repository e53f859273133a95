package response

import (
	"errors"

	"learnhub/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// MsgInvalidCredentials is the single message shown for every identity failure
const MsgInvalidCredentials = "Invalid or missing credentials"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// StatusFor maps a domain error to its HTTP status and public message
func StatusFor(err error) (int, string) {
	switch {
	case domain.IsIdentityError(err):
		return fiber.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "You don't have permission to access this resource"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "Invalid request"
	case errors.Is(err, domain.ErrCannotChangeOwnRole):
		return fiber.StatusBadRequest, "You cannot change your own role"
	case errors.Is(err, domain.ErrCannotDeleteSelf):
		return fiber.StatusBadRequest, "You cannot delete your own account"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusNotFound, "Category not found"
	case errors.Is(err, domain.ErrCourseNotFound):
		return fiber.StatusNotFound, "Course not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrCourseFull):
		return fiber.StatusConflict, "Course is full"
	case errors.Is(err, domain.ErrCourseNotEnrollable):
		return fiber.StatusConflict, "Course is not open for enrollment"
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return fiber.StatusConflict, "Email already registered"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, "Service temporarily unavailable, please retry"
	default:
		return fiber.StatusInternalServerError, "Internal Server Error"
	}
}

// FromError sends the error response matching a domain error
func FromError(c *fiber.Ctx, err error) error {
	status, message := StatusFor(err)
	return Error(c, status, message)
}
