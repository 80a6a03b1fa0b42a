package domain

import (
	"testing"
	"time"
)

func TestComputeTotalCents(t *testing.T) {
	details := PurchaseDetails{
		Items: []PurchaseItem{
			{Name: "Cable", UnitPriceCents: 2590, Quantity: 3},
			{Name: "Mouse", UnitPriceCents: 4500, Quantity: 2},
			{Name: "Sticker", UnitPriceCents: 0, Quantity: 10},
		},
	}
	if got := details.ComputeTotalCents(); got != 2590*3+4500*2 {
		t.Fatalf("total: got %d", got)
	}

	if got := (PurchaseDetails{}).ComputeTotalCents(); got != 0 {
		t.Fatalf("empty total: got %d", got)
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range []RequestStatus{
		StatusPending, StatusApproved, StatusRejected,
		StatusInProgress, StatusCompleted, StatusCanceled,
	} {
		if !status.Valid() {
			t.Fatalf("%s must be valid", status)
		}
	}
	if RequestStatus("SHIPPED").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
	if RequestStatus("pending").Valid() {
		t.Fatalf("status values are case sensitive")
	}
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	stamp := time.Date(2024, 3, 10, 23, 45, 12, 999, loc)

	day := DayOf(stamp)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 || day.Nanosecond() != 0 {
		t.Fatalf("not midnight: %v", day)
	}
	if day.Location() != time.UTC {
		t.Fatalf("not UTC: %v", day.Location())
	}
	if day.Year() != 2024 || day.Month() != time.March || day.Day() != 10 {
		t.Fatalf("calendar day changed: %v", day)
	}

	morning := time.Date(2024, 3, 10, 7, 0, 0, 0, loc)
	if !DayOf(stamp).Equal(DayOf(morning)) {
		t.Fatalf("same calendar day normalized differently: %v vs %v", DayOf(stamp), DayOf(morning))
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAdmin, RoleBlocked} {
		if !role.Valid() {
			t.Fatalf("%s must be valid", role)
		}
	}
	if Role("owner").Valid() {
		t.Fatalf("unknown role must be invalid")
	}
}
