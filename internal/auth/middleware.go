package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/repository"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

const principalKey = "auth_principal"

// AuthMiddleware validates bearer tokens and loads the caller's principal.
type AuthMiddleware struct {
	tokens     *TokenManager
	principals repository.PrincipalRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, principals repository.PrincipalRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, principals: principals}
}

// Handle enforces authentication for protected routes. The role is read from
// the stored record, not the token, so a block or demotion applies on the
// next request rather than at token expiry.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal, err := m.principals.GetByID(c.Context(), claims.PrincipalID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("principal not found")
		}
		return apperrors.MapError(err)
	}
	if principal.Role == domain.RoleBlocked {
		return apperrors.NewForbidden("account blocked")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
