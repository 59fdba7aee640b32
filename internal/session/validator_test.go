package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/internal/session"
)

func testBooking(checkout string) *domain.GuestBooking {
	return &domain.GuestBooking{
		ID:           "bk-1",
		PropertyID:   "prop-casa-brezza",
		PropertySlug: "casa-brezza",
		PropertyName: "Casa Brezza",
		GuestName:    "Mario",
		GuestSurname: "Rossi",
		NumGuests:    2,
		CheckinDate:  "2026-08-01",
		CheckoutDate: checkout,
		Token:        "tok-1",
	}
}

func assertNoGuestState(t *testing.T, store session.Store) {
	t.Helper()
	if _, err := store.Get(context.Background(), session.KeyGuestToken); !errors.Is(err, session.ErrNotCached) {
		t.Fatalf("Expected no persisted guest token, got err %v", err)
	}
	if _, err := store.Get(context.Background(), session.KeyGuestBooking); !errors.Is(err, session.ErrNotCached) {
		t.Fatalf("Expected no persisted guest booking, got err %v", err)
	}
}

func TestValidator_UnknownToken_Invalid(t *testing.T) {
	client := newMockClient()
	store := session.NewMemoryStore()
	v := session.NewValidator(client, store)

	access := v.Validate(context.Background(), "no-such-token")
	if access.Decision != domain.AccessInvalid {
		t.Fatalf("Expected invalid decision, got %s", access.Decision)
	}
	if access.Booking != nil {
		t.Fatalf("Expected no booking on invalid access, got %+v", access.Booking)
	}
	assertNoGuestState(t, store)
}

func TestValidator_TransportError_Invalid(t *testing.T) {
	client := newMockClient()
	client.validateErr = errors.New("connection refused")
	store := session.NewMemoryStore()
	v := session.NewValidator(client, store)

	access := v.Validate(context.Background(), "tok-1")

	// An unreachable backend must never read as expired: expired is only
	// ever derived from a successful lookup.
	if access.Decision != domain.AccessInvalid {
		t.Fatalf("Expected invalid decision on transport error, got %s", access.Decision)
	}
	assertNoGuestState(t, store)
}

func TestValidator_MissingBooking_Invalid(t *testing.T) {
	client := newMockClient()
	client.validations["tok-1"] = &domain.BookingValidation{Valid: true}
	store := session.NewMemoryStore()
	v := session.NewValidator(client, store)

	access := v.Validate(context.Background(), "tok-1")
	if access.Decision != domain.AccessInvalid {
		t.Fatalf("Expected invalid decision on missing booking record, got %s", access.Decision)
	}
	assertNoGuestState(t, store)
}

func TestValidator_ExpiredBooking_NoWrites(t *testing.T) {
	client := newMockClient()
	booking := testBooking("2026-08-10")
	client.validations["tok-1"] = &domain.BookingValidation{
		Valid:   false,
		Message: "Booking expired",
		Booking: booking,
	}
	store := session.NewMemoryStore()
	v := session.NewValidator(client, store)

	access := v.Validate(context.Background(), "tok-1")
	if access.Decision != domain.AccessExpired {
		t.Fatalf("Expected expired decision, got %s", access.Decision)
	}
	if access.Message != "Booking expired" {
		t.Fatalf("Expected message passed through, got %q", access.Message)
	}

	// The stay window still renders on the expired screen.
	if access.Booking == nil || access.Booking.CheckinDate != "2026-08-01" || access.Booking.CheckoutDate != "2026-08-10" {
		t.Fatalf("Expected booking dates intact, got %+v", access.Booking)
	}
	assertNoGuestState(t, store)
}

func TestValidator_ActiveBooking_Persists(t *testing.T) {
	client := newMockClient()
	client.validations["tok-1"] = &domain.BookingValidation{
		Valid:   true,
		Booking: testBooking("2099-01-01"),
	}
	store := session.NewMemoryStore()
	v := session.NewValidator(client, store)

	access := v.Validate(context.Background(), "tok-1")
	if access.Decision != domain.AccessActive {
		t.Fatalf("Expected active decision, got %s", access.Decision)
	}
	if access.Booking == nil || access.Booking.PropertySlug != "casa-brezza" {
		t.Fatalf("Expected booking with property slug, got %+v", access.Booking)
	}

	token, booking, ok := v.Cached(context.Background())
	if !ok {
		t.Fatal("Expected cached guest access after active validation")
	}
	if token != "tok-1" {
		t.Fatalf("Expected cached token tok-1, got %q", token)
	}
	if booking.GuestName != "Mario" || booking.PropertySlug != "casa-brezza" {
		t.Fatalf("Expected cached booking intact, got %+v", booking)
	}
}

func TestValidator_Forget_ClearsState(t *testing.T) {
	client := newMockClient()
	client.validations["tok-1"] = &domain.BookingValidation{
		Valid:   true,
		Booking: testBooking("2099-01-01"),
	}
	store := session.NewMemoryStore()
	v := session.NewValidator(client, store)

	v.Validate(context.Background(), "tok-1")
	if err := v.Forget(context.Background()); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if _, _, ok := v.Cached(context.Background()); ok {
		t.Fatal("Expected no cached access after Forget")
	}
	assertNoGuestState(t, store)
}
