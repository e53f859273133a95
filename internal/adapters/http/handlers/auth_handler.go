package handlers

import (
	"time"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/config"
	"learnhub/internal/core/services"
	"learnhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, validate *validator.Validate, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
		cfg:         cfg,
	}
}

// Register handles user registration
// @Summary Register new user
// @Description Create a student account and sign it in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	h.setAuthCookie(c, result.AccessToken, result.ExpiresAt)

	return response.Created(c, "User registered successfully", result)
}

// Login handles user login
// @Summary Login user
// @Description Check email and password and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return response.FromError(c, err)
	}

	h.setAuthCookie(c, result.AccessToken, result.ExpiresAt)

	return response.Success(c, "Login successful", result)
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the access token cookie. Tokens are stateless and expire on their own.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current principal
// @Summary Get current user
// @Description Get the authenticated principal
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, response.MsgInvalidCredentials)
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": principal,
	})
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(h.authService.TokenTTL().Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
