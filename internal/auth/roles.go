package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// RequireAuthenticated ensures a principal was resolved by the middleware.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller carries the admin role. The same rule is
// enforced again at service level.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
