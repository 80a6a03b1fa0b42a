package dto

import (
	"time"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// AddEquipmentRequest payload.
type AddEquipmentRequest struct {
	Type domain.EquipmentType `json:"type"`
	Name string               `json:"name"`
}

// EquipmentResponse is one catalog entry.
type EquipmentResponse struct {
	ID          string               `json:"id"`
	Type        domain.EquipmentType `json:"type"`
	Name        string               `json:"name"`
	IsAvailable bool                 `json:"is_available"`
	CreatedAt   time.Time            `json:"created_at"`
}

// AddDatesRequest carries "YYYY-MM-DD" days to open for reservation.
type AddDatesRequest struct {
	Dates []string `json:"dates"`
}

// AvailabilityResponse is one ledger entry.
type AvailabilityResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	IsAvailable bool   `json:"is_available"`
}
