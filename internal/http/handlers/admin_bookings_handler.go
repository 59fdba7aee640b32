package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/internal/http/response"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/internal/utils"
	"github.com/yourjourney/guest-portal/pkg/events"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// AdminBookingsHandler mints and manages guest access links. Creating a
// booking issues an opaque token and returns the /p/{token} link the
// host shares with the guest.
type AdminBookingsHandler struct {
	Bookings   postgres.GuestBookingRepo
	Properties postgres.PropertyRepo
	Events     events.Publisher
	PortalBase string
}

func NewAdminBookingsHandler(bookings postgres.GuestBookingRepo, properties postgres.PropertyRepo, bus events.Publisher, portalBase string) *AdminBookingsHandler {
	return &AdminBookingsHandler{
		Bookings:   bookings,
		Properties: properties,
		Events:     bus,
		PortalBase: strings.TrimRight(portalBase, "/"),
	}
}

func (h *AdminBookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *AdminBookingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.GuestBookingCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	in.GuestName = utils.NormalizeString(in.GuestName)
	in.GuestSurname = utils.NormalizeString(in.GuestSurname)
	in.GuestEmail = utils.NormalizeEmail(in.GuestEmail)

	if in.GuestName == "" || in.GuestSurname == "" {
		response.BadRequest(w, "Guest name and surname are required")
		return
	}
	if in.GuestEmail != "" && !utils.IsValidEmail(in.GuestEmail) {
		response.BadRequest(w, "Invalid guest email format")
		return
	}

	checkin, err := time.Parse(domain.DateLayout, in.CheckinDate)
	if err != nil {
		response.BadRequest(w, "checkin_date must be YYYY-MM-DD")
		return
	}
	checkout, err := time.Parse(domain.DateLayout, in.CheckoutDate)
	if err != nil {
		response.BadRequest(w, "checkout_date must be YYYY-MM-DD")
		return
	}
	if checkout.Before(checkin) {
		response.BadRequest(w, "checkout_date must not precede checkin_date")
		return
	}
	if in.NumGuests <= 0 {
		in.NumGuests = 1
	}

	// Resolve the property server-side so the booking snapshot cannot
	// disagree with the property record.
	p, err := h.Properties.GetByID(r.Context(), in.PropertyID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load property for booking", "error", err)
		response.InternalError(w, "Failed to create booking")
		return
	}
	if p == nil {
		response.NotFound(w, "Property not found")
		return
	}
	in.PropertySlug = p.Slug
	in.PropertyName = p.Name

	b, err := h.Bookings.Create(r.Context(), &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create guest booking", "error", err)
		response.InternalError(w, "Failed to create booking")
		return
	}

	link := h.PortalBase + "/p/" + b.Token

	if h.Events != nil {
		err := h.Events.Publish(r.Context(), events.GuestBookingCreated, events.GuestBookingCreatedEvent{
			BookingID:    b.ID,
			PropertySlug: b.PropertySlug,
			PropertyName: b.PropertyName,
			GuestName:    b.GuestName,
			GuestSurname: b.GuestSurname,
			GuestEmail:   b.GuestEmail,
			CheckinDate:  b.CheckinDate,
			CheckoutDate: b.CheckoutDate,
			AccessLink:   link,
			CreatedAt:    b.CreatedAt,
		})
		if err != nil {
			logger.WarnContext(r.Context(), "failed to publish booking created event", "error", err)
		}
	}

	response.WriteJSON(w, http.StatusOK, domain.GuestBookingCreateRes{
		Success: true,
		ID:      b.ID,
		Token:   b.Token,
		Link:    link,
	})
}

func (h *AdminBookingsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	bs, err := h.Bookings.List(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list guest bookings", "error", err)
		response.InternalError(w, "Failed to list bookings")
		return
	}
	response.WriteJSON(w, http.StatusOK, bs)
}

func (h *AdminBookingsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.Bookings.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete guest booking", "id", id, "error", err)
		response.InternalError(w, "Failed to delete booking")
		return
	}
	if !ok {
		response.NotFound(w, "Booking not found")
		return
	}

	if h.Events != nil {
		_ = h.Events.Publish(r.Context(), events.GuestBookingDeleted, map[string]string{"booking_id": id})
	}

	response.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
