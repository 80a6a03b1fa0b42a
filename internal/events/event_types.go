package events

import (
	"time"

	"github.com/colegioeccos/requesthub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventChatMessageAdded     EventType = "chat_message_added"
	EventRoleChanged          EventType = "role_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload carries the freshly persisted aggregate so that
// subscribers need no re-fetch.
type RequestCreatedPayload struct {
	Request domain.Request `json:"request"`
}

// RequestStatusChangedPayload carries the overwritten and new status.
type RequestStatusChangedPayload struct {
	Request   domain.Request       `json:"request"`
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// ChatMessageAddedPayload payload.
type ChatMessageAddedPayload struct {
	RequestID string             `json:"request_id"`
	Message   domain.ChatMessage `json:"message"`
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	PrincipalID string      `json:"principal_id"`
	OldRole     domain.Role `json:"old_role"`
	NewRole     domain.Role `json:"new_role"`
}
