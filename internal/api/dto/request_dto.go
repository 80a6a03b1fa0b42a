package dto

import (
	"time"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// PurchaseItemBody is one purchase line item.
type PurchaseItemBody struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// PurchaseBody is the purchase variant payload.
type PurchaseBody struct {
	Items        []PurchaseItemBody `json:"items"`
	Purpose      string             `json:"purpose"`
	PurchaseLink string             `json:"purchase_link,omitempty"`
}

// SupportBody is the support variant payload.
type SupportBody struct {
	Unit        string `json:"unit"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ReservationBody is the reservation variant payload. Date is "YYYY-MM-DD".
type ReservationBody struct {
	EquipmentIDs []string `json:"equipment_ids"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Location     string   `json:"location"`
	Purpose      string   `json:"purpose"`
}

// CreateRequestRequest is the discriminated submission payload.
type CreateRequestRequest struct {
	Type        domain.RequestType `json:"type"`
	Purchase    *PurchaseBody      `json:"purchase,omitempty"`
	Support     *SupportBody       `json:"support,omitempty"`
	Reservation *ReservationBody   `json:"reservation,omitempty"`
}

// ChatMessageRequest payload.
type ChatMessageRequest struct {
	Text string `json:"text"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.RequestStatus `json:"status"`
}

// ChatMessageResponse is one chat log entry.
type ChatMessageResponse struct {
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// RequestResponse is the full aggregate view.
type RequestResponse struct {
	ID             string                     `json:"id"`
	RequesterID    string                     `json:"requester_id"`
	RequesterName  string                     `json:"requester_name"`
	RequesterEmail string                     `json:"requester_email"`
	Type           domain.RequestType         `json:"type"`
	Status         domain.RequestStatus       `json:"status"`
	Purchase       *domain.PurchaseDetails    `json:"purchase,omitempty"`
	Support        *domain.SupportDetails     `json:"support,omitempty"`
	Reservation    *domain.ReservationDetails `json:"reservation,omitempty"`
	Chat           []ChatMessageResponse      `json:"chat"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}
