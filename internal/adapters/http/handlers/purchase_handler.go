package handlers

import (
	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/core/domain"
	"learnhub/internal/core/services"
	"learnhub/internal/pkg/pagination"
	"learnhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PurchaseHandler handles enrollment and purchase history endpoints
type PurchaseHandler struct {
	enroller        services.Enroller
	purchaseService *services.PurchaseService
	validate        *validator.Validate
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(
	enroller services.Enroller,
	purchaseService *services.PurchaseService,
	validate *validator.Validate,
) *PurchaseHandler {
	return &PurchaseHandler{
		enroller:        enroller,
		purchaseService: purchaseService,
		validate:        validate,
	}
}

// PurchaserRequest holds the buyer's contact fields
type PurchaserRequest struct {
	FullName string `json:"fullName" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Phone    string `json:"phone" validate:"required,max=30"`
	Address  string `json:"address" validate:"required,max=500"`
}

// PurchaseRequest represents an enrollment request body
type PurchaseRequest struct {
	CourseID      uint             `json:"courseId" validate:"required"`
	Purchaser     PurchaserRequest `json:"purchaser"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,max=50"`
	Comments      string           `json:"comments" validate:"max=1000"`
}

func (r *PurchaseRequest) details() domain.PurchaseDetails {
	return domain.PurchaseDetails{
		Purchaser: domain.Purchaser{
			FullName: r.Purchaser.FullName,
			Email:    r.Purchaser.Email,
			Phone:    r.Purchaser.Phone,
			Address:  r.Purchaser.Address,
		},
		PaymentMethod: r.PaymentMethod,
		Comments:      r.Comments,
	}
}

// Purchase enrolls the caller in a course
// @Summary Purchase a course seat
// @Description Reserves one seat and records the purchase atomically
// @Tags Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PurchaseRequest true "Purchase"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /purchases [post]
func (h *PurchaseHandler) Purchase(c *fiber.Ctx) error {
	var req PurchaseRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	record, err := h.enroller.Enroll(c.UserContext(), middleware.GetPrincipal(c), req.CourseID, req.details())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Enrollment successful", fiber.Map{
		"purchaseId": record.ID,
		"reference":  record.Reference,
	})
}

// ListMine lists the caller's purchases
// @Summary My purchases
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /purchases/me [get]
func (h *PurchaseHandler) ListMine(c *fiber.Ctx) error {
	result, err := h.purchaseService.ListMine(c.UserContext(), middleware.GetPrincipal(c), pagination.GetParams(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Purchases retrieved successfully", result)
}

// ListByCourse lists purchases of a course
// @Summary Course purchases
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id}/purchases [get]
func (h *PurchaseHandler) ListByCourse(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	result, err := h.purchaseService.ListByCourse(c.UserContext(), id, pagination.GetParams(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Purchases retrieved successfully", result)
}
