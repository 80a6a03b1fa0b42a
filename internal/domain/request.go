package domain

import "time"

// RequestType discriminates the three request variants.
type RequestType string

const (
	RequestTypePurchase    RequestType = "PURCHASE"
	RequestTypeSupport     RequestType = "SUPPORT"
	RequestTypeReservation RequestType = "RESERVATION"
)

// RequestStatus enumerates lifecycle states for requests.
type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusApproved   RequestStatus = "APPROVED"
	StatusRejected   RequestStatus = "REJECTED"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusCanceled   RequestStatus = "CANCELED"
)

// Valid reports whether the status is one of the known values.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// ActiveStatuses is the set shown in the default admin view. Completed and
// Canceled are treated as terminal by listing filters only; the status field
// itself may move between any two states.
var ActiveStatuses = []RequestStatus{StatusPending, StatusApproved, StatusInProgress}

// ChatMessage is one entry of a request's append-only chat log.
type ChatMessage struct {
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// PurchaseItem is one line of a purchase request. Prices are integral cents.
type PurchaseItem struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// PurchaseDetails is the payload of a purchase request. TotalCents is
// persisted alongside the items and must always equal their recomputed sum.
type PurchaseDetails struct {
	Items        []PurchaseItem `json:"items"`
	TotalCents   int64          `json:"total_cents"`
	Purpose      string         `json:"purpose"`
	PurchaseLink string         `json:"purchase_link,omitempty"`
}

// ComputeTotalCents sums unit price times quantity over all items.
func (d PurchaseDetails) ComputeTotalCents() int64 {
	var total int64
	for _, item := range d.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

// SupportDetails is the payload of a support request.
type SupportDetails struct {
	Unit        string `json:"unit"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// EquipmentRef is a reservation's snapshot of a catalog entry at booking
// time. It is denormalized deliberately and never re-synced.
type EquipmentRef struct {
	EquipmentID string        `json:"equipment_id"`
	Name        string        `json:"name"`
	Type        EquipmentType `json:"type"`
}

// ReservationDetails is the payload of an equipment reservation. Times are
// "HH:MM" strings compared lexicographically; Date is day-granular.
type ReservationDetails struct {
	Equipment []EquipmentRef `json:"equipment"`
	Date      time.Time      `json:"date"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Location  string         `json:"location"`
	Purpose   string         `json:"purpose"`
}

// Request is the central aggregate: one user-submitted request of one of
// three variants, carrying its own chat log. Exactly one of the variant
// payload fields is non-nil, matching Type.
type Request struct {
	ID             string
	RequesterID    string
	RequesterName  string
	RequesterEmail string
	Type           RequestType
	Status         RequestStatus
	Purchase       *PurchaseDetails
	Support        *SupportDetails
	Reservation    *ReservationDetails
	Chat           []ChatMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
