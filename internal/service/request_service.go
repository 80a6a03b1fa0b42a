package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/events"
	"github.com/colegioeccos/requesthub/internal/repository"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// RequestService owns the request lifecycle: submission with per-variant
// validation, status transitions, chat appends, role-scoped listing and
// hard deletion.
type RequestService struct {
	requests   repository.RequestRepository
	equipment  repository.EquipmentRepository
	ledger     repository.AvailabilityRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo      repository.RequestRepository
	EquipmentRepo    repository.EquipmentRepository
	AvailabilityRepo repository.AvailabilityRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		equipment:  deps.EquipmentRepo,
		ledger:     deps.AvailabilityRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// PurchaseItemInput is one line of a purchase submission.
type PurchaseItemInput struct {
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// PurchaseInput describes a purchase submission.
type PurchaseInput struct {
	Items        []PurchaseItemInput
	Purpose      string
	PurchaseLink string
}

// SupportInput describes a support submission.
type SupportInput struct {
	Unit        string
	Location    string
	Category    string
	Description string
}

// ReservationInput describes an equipment reservation submission.
type ReservationInput struct {
	EquipmentIDs []string
	Date         time.Time
	StartTime    string
	EndTime      string
	Location     string
	Purpose      string
}

// SubmitInput is the discriminated submission payload; exactly one variant
// field must be set, matching Type.
type SubmitInput struct {
	Type        domain.RequestType
	Purchase    *PurchaseInput
	Support     *SupportInput
	Reservation *ReservationInput
}

// ListFilter carries the composable filters layered on the base queries.
type ListFilter struct {
	Types      []domain.RequestType
	Statuses   []domain.RequestStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// Submit validates the variant payload and persists a new Pending request.
// Validation failures never persist a partial aggregate; on success the
// admin roster is alerted best-effort.
func (s *RequestService) Submit(ctx context.Context, requester *domain.Principal, input SubmitInput) (*domain.Request, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	request := &domain.Request{
		RequesterID:    requester.ID,
		RequesterName:  requester.DisplayName,
		RequesterEmail: requester.Email,
		Type:           input.Type,
		Status:         domain.StatusPending,
		Chat:           []domain.ChatMessage{},
	}

	switch input.Type {
	case domain.RequestTypePurchase:
		details, err := s.validatePurchase(input.Purchase)
		if err != nil {
			return nil, err
		}
		request.Purchase = details
	case domain.RequestTypeSupport:
		details, err := s.validateSupport(input.Support)
		if err != nil {
			return nil, err
		}
		request.Support = details
	case domain.RequestTypeReservation:
		details, err := s.validateReservation(ctx, input.Reservation)
		if err != nil {
			return nil, err
		}
		request.Reservation = details
	default:
		return nil, apperrors.NewValidationError("unknown request type", map[string]any{"field": "type"})
	}

	if err := s.requests.Create(ctx, request); err != nil {
		if err == repository.ErrDateUnavailable {
			return nil, apperrors.NewConflictUnavailable("selected date is no longer available")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		ActorID:   requester.ID,
		Payload:   events.RequestCreatedPayload{Request: *request},
	})
	return request, nil
}

func (s *RequestService) validatePurchase(input *PurchaseInput) (*domain.PurchaseDetails, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("purchase payload required", map[string]any{"field": "purchase"})
	}
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one item required", map[string]any{"field": "items"})
	}
	items := make([]domain.PurchaseItem, 0, len(input.Items))
	for i, item := range input.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("item name required",
				map[string]any{"field": fmt.Sprintf("items[%d].name", i)})
		}
		if item.UnitPriceCents < 0 {
			return nil, apperrors.NewValidationError("unit price must not be negative",
				map[string]any{"field": fmt.Sprintf("items[%d].unit_price_cents", i)})
		}
		if item.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1",
				map[string]any{"field": fmt.Sprintf("items[%d].quantity", i)})
		}
		items = append(items, domain.PurchaseItem{
			Name:           name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	if strings.TrimSpace(input.Purpose) == "" {
		return nil, apperrors.NewValidationError("purpose required", map[string]any{"field": "purpose"})
	}

	details := &domain.PurchaseDetails{
		Items:        items,
		Purpose:      strings.TrimSpace(input.Purpose),
		PurchaseLink: strings.TrimSpace(input.PurchaseLink),
	}
	details.TotalCents = details.ComputeTotalCents()
	return details, nil
}

func (s *RequestService) validateSupport(input *SupportInput) (*domain.SupportDetails, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("support payload required", map[string]any{"field": "support"})
	}
	fields := map[string]string{
		"unit":        input.Unit,
		"location":    input.Location,
		"category":    input.Category,
		"description": input.Description,
	}
	for field, value := range fields {
		if strings.TrimSpace(value) == "" {
			return nil, apperrors.NewValidationError(field+" required", map[string]any{"field": field})
		}
	}
	return &domain.SupportDetails{
		Unit:        strings.TrimSpace(input.Unit),
		Location:    strings.TrimSpace(input.Location),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
	}, nil
}

func (s *RequestService) validateReservation(ctx context.Context, input *ReservationInput) (*domain.ReservationDetails, error) {
	if input == nil {
		return nil, apperrors.NewValidationError("reservation payload required", map[string]any{"field": "reservation"})
	}
	if len(input.EquipmentIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one equipment required", map[string]any{"field": "equipment_ids"})
	}
	if !validClockTime(input.StartTime) || !validClockTime(input.EndTime) {
		return nil, apperrors.NewValidationError(`times must be "HH:MM"`, map[string]any{"field": "start_time"})
	}
	if input.StartTime >= input.EndTime {
		return nil, apperrors.NewValidationError("start time must precede end time", map[string]any{"field": "start_time"})
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, apperrors.NewValidationError("location required", map[string]any{"field": "location"})
	}
	if strings.TrimSpace(input.Purpose) == "" {
		return nil, apperrors.NewValidationError("purpose required", map[string]any{"field": "purpose"})
	}
	if !s.dateAvailable(ctx, input.Date) {
		return nil, apperrors.NewConflictUnavailable("selected date is not available for reservation")
	}

	refs := make([]domain.EquipmentRef, 0, len(input.EquipmentIDs))
	for _, id := range input.EquipmentIDs {
		equipment, err := s.equipment.GetByID(ctx, id)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("unknown equipment",
					map[string]any{"field": "equipment_ids", "equipment_id": id})
			}
			return nil, err
		}
		refs = append(refs, domain.EquipmentRef{
			EquipmentID: equipment.ID,
			Name:        equipment.Name,
			Type:        equipment.Type,
		})
	}

	return &domain.ReservationDetails{
		Equipment: refs,
		Date:      domain.DayOf(input.Date),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Location:  strings.TrimSpace(input.Location),
		Purpose:   strings.TrimSpace(input.Purpose),
	}, nil
}

// dateAvailable is the pre-check; the repository re-checks inside the
// insert transaction.
func (s *RequestService) dateAvailable(ctx context.Context, date time.Time) bool {
	available, err := s.ledger.IsAvailable(ctx, date)
	if err != nil {
		s.logger.Warn("availability pre-check failed; treating day as unavailable",
			zap.Time("date", date), zap.Error(err))
		return false
	}
	return available
}

func validClockTime(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

// Transition moves a request to the target status. Any status may follow
// any other; the only state-dependent side effect is the requester alert
// fired when the stored status actually changes to Approved or Rejected.
func (s *RequestService) Transition(ctx context.Context, actor *domain.Principal, requestID string, target domain.RequestStatus) (*domain.Request, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !target.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"field": "status"})
	}

	prev, err := s.requests.UpdateStatus(ctx, requestID, target)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: requestID,
		ActorID:   actor.ID,
		Payload: events.RequestStatusChangedPayload{
			Request:   *request,
			OldStatus: prev,
			NewStatus: target,
		},
	})
	return request, nil
}

// AppendChat appends one message to the aggregate's chat log. Non-admin
// senders must own the request. The log is append-only; nothing is ever
// edited or removed.
func (s *RequestService) AppendChat(ctx context.Context, actor *domain.Principal, requestID, text string) (*domain.ChatMessage, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("text required", map[string]any{"field": "text"})
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && request.RequesterID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}

	message := domain.ChatMessage{
		SenderID:   actor.ID,
		SenderName: actor.DisplayName,
		Text:       text,
		SentAt:     time.Now(),
	}
	if err := s.requests.AppendChat(ctx, requestID, message); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventChatMessageAdded,
		RequestID: requestID,
		ActorID:   actor.ID,
		Payload:   events.ChatMessageAddedPayload{RequestID: requestID, Message: message},
	})
	return &message, nil
}

// ListOwn returns the caller's requests, Canceled excluded, ordered by
// status then recency.
func (s *RequestService) ListOwn(ctx context.Context, requester *domain.Principal, filter ListFilter) ([]domain.Request, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.RequestFilter{
		RequesterID:        &requester.ID,
		Types:              filter.Types,
		Statuses:           filter.Statuses,
		ExcludeStatuses:    []domain.RequestStatus{domain.StatusCanceled},
		SearchTerm:         filter.SearchTerm,
		OrderByStatusFirst: true,
		Limit:              filter.Limit,
		Offset:             filter.Offset,
	}
	return s.requests.ListWithFilter(ctx, repoFilter)
}

// ListAdmin returns the triage view: active requests by default, everything
// by recency when includeTerminal is set. Under the default view a caller
// status filter can only narrow the active set, never widen it into
// terminal states.
func (s *RequestService) ListAdmin(ctx context.Context, actor *domain.Principal, includeTerminal bool, filter ListFilter) ([]domain.Request, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	repoFilter := repository.RequestFilter{
		Types:      filter.Types,
		Statuses:   filter.Statuses,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if !includeTerminal {
		repoFilter.OrderByStatusFirst = true
		if len(filter.Statuses) == 0 {
			repoFilter.Statuses = domain.ActiveStatuses
		} else {
			narrowed := intersectStatuses(filter.Statuses, domain.ActiveStatuses)
			if len(narrowed) == 0 {
				return []domain.Request{}, nil
			}
			repoFilter.Statuses = narrowed
		}
	}
	return s.requests.ListWithFilter(ctx, repoFilter)
}

func intersectStatuses(requested, allowed []domain.RequestStatus) []domain.RequestStatus {
	var out []domain.RequestStatus
	for _, status := range requested {
		for _, candidate := range allowed {
			if status == candidate {
				out = append(out, status)
				break
			}
		}
	}
	return out
}

// GetForUser fetches one request, enforcing ownership for non-admins.
func (s *RequestService) GetForUser(ctx context.Context, actor *domain.Principal, requestID string) (*domain.Request, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && request.RequesterID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return request, nil
}

// Delete removes the aggregate irreversibly. No notification is sent.
func (s *RequestService) Delete(ctx context.Context, actor *domain.Principal, requestID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, requestID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("request", map[string]any{"request_id": requestID})
		}
		return err
	}
	return nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
