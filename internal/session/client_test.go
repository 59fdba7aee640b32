package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/internal/session"
)

func TestHTTPClient_PropertyBySlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/properties/casa-brezza":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(domain.Property{
				ID:   "prop-1",
				Name: "Casa Brezza",
				Slug: "casa-brezza",
			})
		case "/api/properties/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := session.NewHTTPClient(server.URL, 2*time.Second)

	p, err := client.PropertyBySlug(context.Background(), "casa-brezza")
	if err != nil {
		t.Fatalf("Expected property, got error %v", err)
	}
	if p.Name != "Casa Brezza" || p.Slug != "casa-brezza" {
		t.Fatalf("Unexpected property payload: %+v", p)
	}

	if _, err := client.PropertyBySlug(context.Background(), "no-such-slug"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for 404, got %v", err)
	}

	if _, err := client.PropertyBySlug(context.Background(), "broken"); err == nil || errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected a non-404 error for 500, got %v", err)
	}
}

func TestHTTPClient_ValidateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/booking/tok-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.BookingValidation{
			Valid: true,
			Booking: &domain.GuestBooking{
				ID:           "bk-1",
				PropertySlug: "casa-brezza",
				GuestName:    "Mario",
				CheckoutDate: "2099-01-01",
				Token:        "tok-1",
			},
		})
	}))
	defer server.Close()

	client := session.NewHTTPClient(server.URL, 2*time.Second)

	res, err := client.ValidateToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Expected validation result, got error %v", err)
	}
	if !res.Valid || res.Booking == nil || res.Booking.GuestName != "Mario" {
		t.Fatalf("Unexpected validation payload: %+v", res)
	}

	if _, err := client.ValidateToken(context.Background(), "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown token, got %v", err)
	}
}

func TestHTTPClient_TrailingSlashBase(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(domain.Property{Slug: "casa-brezza"})
	}))
	defer server.Close()

	client := session.NewHTTPClient(server.URL+"/", 2*time.Second)
	if _, err := client.PropertyBySlug(context.Background(), "casa-brezza"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotPath != "/api/properties/casa-brezza" {
		t.Fatalf("Expected normalized path, got %q", gotPath)
	}
}
