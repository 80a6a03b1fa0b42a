package dto

import (
	"time"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// SignInRequest carries the identity-provider assertion.
type SignInRequest struct {
	Assertion string `json:"assertion"`
}

// AuthResponse is the issued portal session.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PrincipalResponse is the public view of a member.
type PrincipalResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	PhotoURL    string      `json:"photo_url,omitempty"`
	Role        domain.Role `json:"role"`
	LastLogin   time.Time   `json:"last_login"`
}

// UpdateRoleRequest payload.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}
