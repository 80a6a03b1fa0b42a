package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// AdminRequestsHandler exposes the triage endpoints.
type AdminRequestsHandler struct {
	service *service.RequestService
}

// NewAdminRequestsHandler constructs handler.
func NewAdminRequestsHandler(requestService *service.RequestService) *AdminRequestsHandler {
	return &AdminRequestsHandler{service: requestService}
}

// List GET /admin/requests. The default view hides terminal statuses;
// include_terminal=true returns everything by recency.
func (h *AdminRequestsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	includeTerminal := c.QueryBool("include_terminal", false)
	requests, err := h.service.ListAdmin(c.Context(), principal, includeTerminal, parseListFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// UpdateStatus PATCH /admin/requests/:id/status.
func (h *AdminRequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.Transition(c.Context(), principal, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// Delete DELETE /admin/requests/:id.
func (h *AdminRequestsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
