package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// AvailabilityHandler manages the reservation-day ledger endpoints.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: availabilityService}
}

// List GET /availability.
func (h *AvailabilityHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.ListAvailable(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AvailabilityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, availabilityResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add POST /admin/availability.
func (h *AvailabilityHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddDatesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewValidationError(`dates must be "YYYY-MM-DD"`,
				map[string]any{"field": "dates", "value": raw})
		}
		dates = append(dates, date)
	}

	added, err := h.service.AddDates(c.Context(), principal, dates)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"added": added}})
}

// Remove DELETE /admin/availability/:id.
func (h *AvailabilityHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.RemoveDate(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
