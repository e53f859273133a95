package services

import (
	"context"
	"fmt"
	"strings"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/pagination"
)

// CourseService serves the catalog. It never touches enrolled_count.
type CourseService struct {
	courseRepo   repositories.CourseRepository
	categoryRepo repositories.CategoryRepository
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo repositories.CourseRepository,
	categoryRepo repositories.CategoryRepository,
) *CourseService {
	return &CourseService{
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
	}
}

// ListCoursesInput represents catalog filters
type ListCoursesInput struct {
	CategoryID *uint
	Status     string
}

// CreateCourseInput represents create course input
type CreateCourseInput struct {
	CategoryID  *uint   `json:"category_id"`
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	MaxSeats    int     `json:"max_seats" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft active published inactive"`
}

// UpdateStatusInput represents a course status change
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft active published inactive"`
}

// ListCategories returns every category
func (s *CourseService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return categories, nil
}

// ListCourses lists courses. Without a status filter only enrollable courses
// are returned.
func (s *CourseService) ListCourses(ctx context.Context, input ListCoursesInput, params *pagination.Params) (*pagination.Response, error) {
	filter := repositories.CourseFilter{CategoryID: input.CategoryID}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch {
	case status == "":
		filter.Statuses = []string{string(domain.CourseStatusActive), string(domain.CourseStatusPublished)}
	case domain.CourseStatus(status).Valid():
		filter.Statuses = []string{status}
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, input.Status)
	}

	courses, total, err := s.courseRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, storeError(err)
	}

	items := make([]*models.CourseResponse, len(courses))
	for i, course := range courses {
		items[i] = course.ToResponse()
	}
	return pagination.NewResponse(items, params, total), nil
}

// GetCourse gets a course by ID
func (s *CourseService) GetCourse(ctx context.Context, id uint) (*models.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrCourseNotFound)
	}
	return course.ToResponse(), nil
}

// CreateCourse creates a course owned by the calling instructor
func (s *CourseService) CreateCourse(ctx context.Context, principal *domain.Principal, input *CreateCourseInput) (*models.CourseResponse, error) {
	if !principal.RequiresRole(domain.RoleInstructor) {
		return nil, domain.ErrForbidden
	}

	status := input.Status
	if status == "" {
		status = string(domain.CourseStatusDraft)
	}
	if !domain.CourseStatus(status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, input.Status)
	}
	if input.MaxSeats < 0 || input.Price < 0 {
		return nil, fmt.Errorf("%w: price and seats must not be negative", domain.ErrInvalidInput)
	}

	var category *models.Category
	if input.CategoryID != nil {
		c, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, notFoundOr(err, domain.ErrCategoryNotFound)
		}
		category = c
	}

	instructorID := principal.ID
	course := &models.Course{
		CategoryID:   input.CategoryID,
		InstructorID: &instructorID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Price:        input.Price,
		MaxSeats:     input.MaxSeats,
		Status:       status,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, storeError(err)
	}

	course.Category = category
	return course.ToResponse(), nil
}

// UpdateStatus changes the status of a course. Instructors may only change
// courses they own; admins may change any course.
func (s *CourseService) UpdateStatus(ctx context.Context, principal *domain.Principal, id uint, status string) (*models.CourseResponse, error) {
	if !principal.RequiresRole(domain.RoleInstructor) {
		return nil, domain.ErrForbidden
	}
	if !domain.CourseStatus(status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrCourseNotFound)
	}
	if !principal.RequiresRole(domain.RoleAdmin) && !ownedBy(course, principal) {
		return nil, domain.ErrForbidden
	}

	if err := s.courseRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFoundOr(err, domain.ErrCourseNotFound)
	}
	return s.GetCourse(ctx, id)
}

func ownedBy(course *models.Course, principal *domain.Principal) bool {
	return course.InstructorID != nil && *course.InstructorID == principal.ID
}
