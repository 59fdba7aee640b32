package domain

import (
	"testing"
	"time"
)

func TestGuestBooking_Expired(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkout string
		want     bool
	}{
		{"checkout yesterday", "2026-08-28", true},
		{"checkout today", "2026-08-29", false},
		{"checkout tomorrow", "2026-08-30", false},
		{"checkout far future", "2027-01-01", false},
		{"unparseable date", "29/08/2026", true},
		{"empty date", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &GuestBooking{CheckoutDate: tt.checkout}
			if got := b.Expired(now); got != tt.want {
				t.Fatalf("Expired with checkout %q = %v, want %v", tt.checkout, got, tt.want)
			}
		})
	}
}

func TestGuestBooking_Expired_MidnightBoundary(t *testing.T) {
	// A booking stays active through the entire checkout day and flips
	// strictly after local midnight.
	b := &GuestBooking{CheckoutDate: "2026-08-29"}

	lateCheckoutDay := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)
	if b.Expired(lateCheckoutDay) {
		t.Fatal("Expected booking active late on checkout day")
	}

	justAfterMidnight := time.Date(2026, 8, 30, 0, 0, 1, 0, time.UTC)
	if !b.Expired(justAfterMidnight) {
		t.Fatal("Expected booking expired the day after checkout")
	}
}
