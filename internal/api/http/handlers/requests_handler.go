package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// RequestsHandler manages the requester-facing endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input, err := submitInput(req)
	if err != nil {
		return err
	}
	request, err := h.service.Submit(c.Context(), principal, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": requestResponse(request)})
}

// List GET /requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.service.ListOwn(c.Context(), principal, parseListFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// Get GET /requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.service.GetForUser(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// AddChat POST /requests/:id/chat.
func (h *RequestsHandler) AddChat(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.service.AppendChat(c.Context(), principal, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ChatMessageResponse{
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Text:       message.Text,
		SentAt:     message.SentAt,
	}})
}

func submitInput(req dto.CreateRequestRequest) (service.SubmitInput, error) {
	input := service.SubmitInput{Type: req.Type}

	switch req.Type {
	case domain.RequestTypePurchase:
		if req.Purchase == nil {
			return input, apperrors.NewValidationError("purchase payload required", map[string]any{"field": "purchase"})
		}
		items := make([]service.PurchaseItemInput, 0, len(req.Purchase.Items))
		for _, item := range req.Purchase.Items {
			items = append(items, service.PurchaseItemInput{
				Name:           item.Name,
				UnitPriceCents: item.UnitPriceCents,
				Quantity:       item.Quantity,
			})
		}
		input.Purchase = &service.PurchaseInput{
			Items:        items,
			Purpose:      req.Purchase.Purpose,
			PurchaseLink: req.Purchase.PurchaseLink,
		}
	case domain.RequestTypeSupport:
		if req.Support == nil {
			return input, apperrors.NewValidationError("support payload required", map[string]any{"field": "support"})
		}
		input.Support = &service.SupportInput{
			Unit:        req.Support.Unit,
			Location:    req.Support.Location,
			Category:    req.Support.Category,
			Description: req.Support.Description,
		}
	case domain.RequestTypeReservation:
		if req.Reservation == nil {
			return input, apperrors.NewValidationError("reservation payload required", map[string]any{"field": "reservation"})
		}
		date, err := time.Parse("2006-01-02", req.Reservation.Date)
		if err != nil {
			return input, apperrors.NewValidationError(`date must be "YYYY-MM-DD"`, map[string]any{"field": "date"})
		}
		input.Reservation = &service.ReservationInput{
			EquipmentIDs: req.Reservation.EquipmentIDs,
			Date:         date,
			StartTime:    req.Reservation.StartTime,
			EndTime:      req.Reservation.EndTime,
			Location:     req.Reservation.Location,
			Purpose:      req.Reservation.Purpose,
		}
	default:
		return input, apperrors.NewValidationError("unknown request type", map[string]any{"field": "type"})
	}
	return input, nil
}

func parseListFilter(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.RequestType(strings.TrimSpace(part)))
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.RequestStatus(strings.TrimSpace(part)))
		}
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		filter.SearchTerm = &search
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}
	return filter
}
