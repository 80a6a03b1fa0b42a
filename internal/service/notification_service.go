package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/events"
	"github.com/colegioeccos/requesthub/internal/notifier"
)

// AdminDirectory resolves the current admin e-mail roster. It is an explicit
// collaborator so the dispatcher does not reach into identity storage.
type AdminDirectory interface {
	ListAdminEmails(ctx context.Context) ([]string, error)
}

// NotificationService turns domain events into outbound notifications. All
// delivery is best-effort: failures are logged and swallowed, and the
// mutation that emitted the event has already committed.
type NotificationService struct {
	dispatcher events.Dispatcher
	directory  AdminDirectory
	sender     notifier.Sender
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, directory AdminDirectory, sender notifier.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		directory:  directory,
		sender:     sender,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestCreatedPayload)
	if !ok {
		return nil
	}
	request := payload.Request

	recipients, err := n.directory.ListAdminEmails(ctx)
	if err != nil {
		n.logger.Warn("failed to resolve admin roster; admin alert skipped",
			zap.String("request_id", request.ID), zap.Error(err))
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("New %s request - RequestHub", typeLabel(request.Type))
	n.deliver(ctx, recipients, subject, requestSummary(&request))
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestStatusChangedPayload)
	if !ok {
		return nil
	}
	if payload.OldStatus == payload.NewStatus {
		return nil
	}
	if payload.NewStatus != domain.StatusApproved && payload.NewStatus != domain.StatusRejected {
		return nil
	}

	request := payload.Request
	verb := "approved"
	if payload.NewStatus == domain.StatusRejected {
		verb = "rejected"
	}
	subject := fmt.Sprintf("Update on your %s request - RequestHub", typeLabel(request.Type))
	body := strings.Join([]string{
		fmt.Sprintf("Hello %s,", request.RequesterName),
		"",
		fmt.Sprintf("Your %s request was %s by an administrator.", typeLabel(request.Type), verb),
		fmt.Sprintf("Current status: %s", payload.NewStatus),
		"",
		"Visit the portal for details.",
		"RequestHub",
	}, "\n")

	n.deliver(ctx, []string{request.RequesterEmail}, subject, body)
	return nil
}

func (n *NotificationService) deliver(ctx context.Context, recipients []string, subject, body string) {
	if err := n.sender.Send(ctx, recipients, subject, body); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("subject", subject), zap.Error(err))
	}
}

// requestSummary composes the admin alert with variant-specific highlights.
func requestSummary(request *domain.Request) string {
	lines := []string{
		"A new request was submitted.",
		"",
		fmt.Sprintf("Type: %s", typeLabel(request.Type)),
		fmt.Sprintf("Requester: %s (%s)", request.RequesterName, request.RequesterEmail),
	}

	switch request.Type {
	case domain.RequestTypePurchase:
		lines = append(lines,
			fmt.Sprintf("Purpose: %s", request.Purchase.Purpose),
			fmt.Sprintf("Total: %s", formatCents(request.Purchase.TotalCents)))
	case domain.RequestTypeSupport:
		lines = append(lines,
			fmt.Sprintf("Unit: %s", request.Support.Unit),
			fmt.Sprintf("Location: %s", request.Support.Location),
			fmt.Sprintf("Category: %s", request.Support.Category))
	case domain.RequestTypeReservation:
		names := make([]string, 0, len(request.Reservation.Equipment))
		for _, ref := range request.Reservation.Equipment {
			names = append(names, fmt.Sprintf("%s (%s)", ref.Name, ref.Type))
		}
		lines = append(lines,
			fmt.Sprintf("Equipment: %s", strings.Join(names, ", ")),
			fmt.Sprintf("Date: %s", request.Reservation.Date.Format("2006-01-02")),
			fmt.Sprintf("Time: %s - %s", request.Reservation.StartTime, request.Reservation.EndTime),
			fmt.Sprintf("Location: %s", request.Reservation.Location))
	}

	lines = append(lines, "", "Open the portal to review and respond.", "RequestHub")
	return strings.Join(lines, "\n")
}

func typeLabel(t domain.RequestType) string {
	switch t {
	case domain.RequestTypePurchase:
		return "purchase"
	case domain.RequestTypeSupport:
		return "support"
	case domain.RequestTypeReservation:
		return "reservation"
	default:
		return strings.ToLower(string(t))
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("R$ %d.%02d", cents/100, cents%100)
}
