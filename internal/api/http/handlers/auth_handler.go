package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/colegioeccos/requesthub/internal/api/dto"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// AuthHandler exposes the federated sign-in exchange.
type AuthHandler struct {
	identity *service.IdentityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// SignIn POST /auth/sso.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Assertion) == "" {
		return apperrors.NewValidationError("assertion required", map[string]any{"field": "assertion"})
	}

	principal, token, expiresAt, err := h.identity.SignIn(c.Context(), req.Assertion)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"principal": principalResponse(principal),
			"auth":      dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
