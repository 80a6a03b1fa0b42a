package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// EquipmentHandler manages the asset catalog endpoints.
type EquipmentHandler struct {
	service *service.EquipmentService
}

// NewEquipmentHandler constructs handler.
func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: equipmentService}
}

// List GET /equipment. An optional type query narrows the catalog.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	var (
		items []domain.Equipment
		err   error
	)
	if typeStr := c.Query("type"); typeStr != "" {
		items, err = h.service.ListByType(c.Context(), domain.EquipmentType(typeStr))
	} else {
		items, err = h.service.ListAll(c.Context())
	}
	if err != nil {
		return err
	}

	responses := make([]dto.EquipmentResponse, 0, len(items))
	for i := range items {
		responses = append(responses, equipmentResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Add POST /admin/equipment.
func (h *EquipmentHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddEquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	equipment, err := h.service.Add(c.Context(), principal, req.Type, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": equipmentResponse(equipment)})
}

// Remove DELETE /admin/equipment/:id.
func (h *EquipmentHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Remove(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
