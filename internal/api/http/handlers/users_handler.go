package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// UsersHandler exposes admin member management.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// List GET /admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	principals, err := h.identity.ListPrincipals(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PrincipalResponse, 0, len(principals))
	for i := range principals {
		items = append(items, principalResponse(&principals[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateRole PATCH /admin/users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.identity.UpdateRole(c.Context(), principal, c.Params("id"), req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "role": req.Role}})
}
