package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/domain"
)

func TestAddDatesNormalizesAndDeduplicates(t *testing.T) {
	ledger := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(ledger, zap.NewNop())

	// Same calendar day at different times plus one distinct day.
	added, err := svc.AddDates(context.Background(), adminPrincipal("root"), []time.Time{
		time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 17, 45, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if len(ledger.addCalls) != 1 || len(ledger.addCalls[0]) != 2 {
		t.Fatalf("duplicates must be dropped before the store call: %v", ledger.addCalls)
	}
	for _, day := range ledger.addCalls[0] {
		if day.Hour() != 0 || day.Location() != time.UTC {
			t.Fatalf("day not normalized: %v", day)
		}
	}

	// Re-adding an existing day adds nothing.
	added, err = svc.AddDates(context.Background(), adminPrincipal("root"), []time.Time{
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added != 0 {
		t.Fatalf("existing day must be skipped, got %d", added)
	}
}

func TestAddDatesRequiresAdminAndInput(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityRepo(), zap.NewNop())

	_, err := svc.AddDates(context.Background(), userPrincipal("alice"), []time.Time{time.Now()})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("got code %s", code)
	}

	_, err = svc.AddDates(context.Background(), adminPrincipal("root"), nil)
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("got code %s", code)
	}
}

func TestIsAvailableBiasesTowardUnavailable(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	ledger := newFakeAvailabilityRepo(day)
	svc := NewAvailabilityService(ledger, zap.NewNop())

	if !svc.IsAvailable(context.Background(), day) {
		t.Fatalf("open day reported unavailable")
	}
	if svc.IsAvailable(context.Background(), day.AddDate(0, 0, 1)) {
		t.Fatalf("absent day reported available")
	}

	ledger.checkErr = errors.New("connection reset")
	if svc.IsAvailable(context.Background(), day) {
		t.Fatalf("ledger failure must read as unavailable")
	}
}

func TestRemoveDateRequiresAdmin(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	ledger := newFakeAvailabilityRepo(day)
	svc := NewAvailabilityService(ledger, zap.NewNop())

	if err := svc.RemoveDate(context.Background(), userPrincipal("alice"), "avail-1"); err == nil {
		t.Fatalf("non-admin must not remove dates")
	}
	if err := svc.RemoveDate(context.Background(), adminPrincipal("root"), "avail-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if ok, _ := ledger.IsAvailable(context.Background(), domain.DayOf(day)); ok {
		t.Fatalf("day still open after removal")
	}
}
