package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/internal/http/response"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/pkg/events"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// BookingAccessHandler validates guest link tokens. An unknown token is
// a 404; a known one always returns the booking, with valid=false once
// the stay window has passed so the portal can render the expiry view
// with the original dates.
type BookingAccessHandler struct {
	Bookings postgres.GuestBookingRepo
	Events   events.Publisher
}

func NewBookingAccessHandler(bookings postgres.GuestBookingRepo, bus events.Publisher) *BookingAccessHandler {
	return &BookingAccessHandler{Bookings: bookings, Events: bus}
}

func (h *BookingAccessHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{token}", h.validate)
	return r
}

func (h *BookingAccessHandler) validate(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	b, err := h.Bookings.GetByToken(r.Context(), token)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to look up guest booking", "error", err)
		response.InternalError(w, "Failed to validate token")
		return
	}
	if b == nil {
		response.WriteError(w, http.StatusNotFound, "Invalid or unknown access link", response.CodeInvalidToken)
		return
	}

	res := domain.BookingValidation{Booking: b}
	if b.Expired(time.Now()) {
		res.Valid = false
		res.Message = fmt.Sprintf("Your stay at %s ended on %s.", b.PropertyName, b.CheckoutDate)
		h.publishAccess(r, b, domain.AccessExpired)
	} else {
		res.Valid = true
		res.Message = fmt.Sprintf("Welcome %s! Your stay at %s is confirmed.", b.GuestName, b.PropertyName)
		h.publishAccess(r, b, domain.AccessActive)
	}

	response.WriteJSON(w, http.StatusOK, res)
}

func (h *BookingAccessHandler) publishAccess(r *http.Request, b *domain.GuestBooking, d domain.Decision) {
	if h.Events == nil {
		return
	}
	subject := events.GuestAccessGranted
	if d == domain.AccessExpired {
		subject = events.GuestAccessExpired
	}
	err := h.Events.Publish(r.Context(), subject, events.GuestAccessEvent{
		BookingID:    b.ID,
		PropertySlug: b.PropertySlug,
		Decision:     d.String(),
		OccurredAt:   time.Now(),
	})
	if err != nil {
		logger.WarnContext(r.Context(), "failed to publish guest access event", "error", err)
	}
}
