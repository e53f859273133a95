package middleware

import (
	"strings"

	"learnhub/internal/core/domain"
	"learnhub/internal/core/services"
	"learnhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AccessTokenCookie is the cookie set at login and accepted as a fallback
const AccessTokenCookie = "access_token"

// extractToken reads the bearer credential. The Authorization header wins
// over the cookie; a header with any other scheme is malformed.
func extractToken(c *fiber.Ctx) (string, error) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", domain.ErrInvalidToken
		}
		return strings.TrimSpace(token), nil
	}

	// Fall back to the login cookie
	return c.Cookies(AccessTokenCookie), nil
}

// AuthMiddleware creates authentication middleware. Every failure kind is
// logged distinctly but answered with the same 401 body.
func AuthMiddleware(auth services.Authenticator, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractToken(c)
		if err == nil {
			var principal *domain.Principal
			principal, err = auth.Authenticate(c.UserContext(), token)
			if err == nil {
				c.SetUserContext(domain.WithPrincipal(c.UserContext(), principal))
				return c.Next()
			}
		}

		log.Info().
			Err(err).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Interface("request_id", c.Locals("requestid")).
			Msg("authentication failed")
		return response.FromError(c, err)
	}
}

// GetPrincipal returns the principal set by AuthMiddleware, or nil
func GetPrincipal(c *fiber.Ctx) *domain.Principal {
	principal, _ := domain.PrincipalFromContext(c.UserContext())
	return principal
}

// RequireRole creates role-based authorization middleware. It must run after
// AuthMiddleware.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if principal == nil {
			return response.Unauthorized(c, response.MsgInvalidCredentials)
		}

		if !principal.RequiresRole(required) {
			return response.FromError(c, domain.ErrForbidden)
		}

		return c.Next()
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// InstructorOrAdmin middleware allows instructors and admins
func InstructorOrAdmin() fiber.Handler {
	return RequireRole(domain.RoleInstructor)
}
