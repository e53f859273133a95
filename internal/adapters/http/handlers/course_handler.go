package handlers

import (
	"strconv"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/core/services"
	"learnhub/internal/pkg/pagination"
	"learnhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles catalog endpoints
type CourseHandler struct {
	courseService *services.CourseService
	validate      *validator.Validate
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService, validate *validator.Validate) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validate:      validate,
	}
}

// ListCategories lists all categories
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CourseHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.courseService.ListCategories(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Categories retrieved successfully", categories)
}

// ListCourses lists courses
// @Summary List courses
// @Description Without a status filter only courses open for enrollment are listed
// @Tags Catalog
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param category_id query int false "Category"
// @Param status query string false "draft, active, published or inactive"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	input := services.ListCoursesInput{Status: c.Query("status")}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return response.BadRequest(c, "category_id must be a positive integer")
		}
		categoryID := uint(id)
		input.CategoryID = &categoryID
	}

	result, err := h.courseService.ListCourses(c.UserContext(), input, pagination.GetParams(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Courses retrieved successfully", result)
}

// GetCourse gets a course
// @Summary Get course
// @Tags Catalog
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.courseService.GetCourse(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Course retrieved successfully", course)
}

// CreateCourse creates a course
// @Summary Create course
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCourseInput true "Course"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req services.CreateCourseInput
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	course, err := h.courseService.CreateCourse(c.UserContext(), middleware.GetPrincipal(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Course created successfully", course)
}

// UpdateStatus changes a course status
// @Summary Update course status
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body services.UpdateStatusInput true "Status"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id}/status [patch]
func (h *CourseHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req services.UpdateStatusInput
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	course, err := h.courseService.UpdateStatus(c.UserContext(), middleware.GetPrincipal(c), id, req.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Course status updated", course)
}
