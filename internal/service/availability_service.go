package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/repository"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// AvailabilityService manages the ledger of days open for reservation.
type AvailabilityService struct {
	ledger repository.AvailabilityRepository
	logger *zap.Logger
}

// NewAvailabilityService builds the service.
func NewAvailabilityService(ledger repository.AvailabilityRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{ledger: ledger, logger: logger}
}

// ListAvailable returns every day currently open for reservation.
func (s *AvailabilityService) ListAvailable(ctx context.Context) ([]domain.AvailabilityDate, error) {
	return s.ledger.ListAvailable(ctx)
}

// AddDates opens the given days for reservation. Input is normalized to day
// granularity and de-duplicated; days already in the ledger are skipped by
// the store's unique index. Returns the number of newly opened days.
func (s *AvailabilityService) AddDates(ctx context.Context, actor *domain.Principal, dates []time.Time) (int, error) {
	if err := requireAdmin(actor); err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, apperrors.NewValidationError("at least one date required", map[string]any{"field": "dates"})
	}

	seen := make(map[time.Time]struct{}, len(dates))
	normalized := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		day := domain.DayOf(date)
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		normalized = append(normalized, day)
	}

	return s.ledger.AddDates(ctx, normalized)
}

// RemoveDate closes a day for reservation.
func (s *AvailabilityService) RemoveDate(ctx context.Context, actor *domain.Principal, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.ledger.Remove(ctx, id)
}

// IsAvailable reports whether a day is open. Uncertainty biases toward
// unavailable: a failing ledger query yields false, not an error.
func (s *AvailabilityService) IsAvailable(ctx context.Context, date time.Time) bool {
	available, err := s.ledger.IsAvailable(ctx, date)
	if err != nil {
		s.logger.Warn("availability check failed; treating day as unavailable",
			zap.Time("date", date), zap.Error(err))
		return false
	}
	return available
}

func requireAdmin(actor *domain.Principal) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
