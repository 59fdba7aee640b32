package handlers

import (
	"net/http"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/internal/http/response"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// SeedHandler bootstraps a fresh install with a default admin and the
// default property. Safe to call repeatedly; it no-ops once seeded.
type SeedHandler struct {
	Admins     postgres.AdminRepo
	Properties postgres.PropertyRepo
}

func NewSeedHandler(admins postgres.AdminRepo, properties postgres.PropertyRepo) *SeedHandler {
	return &SeedHandler{Admins: admins, Properties: properties}
}

func (h *SeedHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.seed)
	return r
}

func (h *SeedHandler) seed(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Admins.FindByEmail(r.Context(), "admin@yourjourney.local")
	if err != nil {
		logger.ErrorContext(r.Context(), "seed check failed", "error", err)
		response.InternalError(w, "Seed failed")
		return
	}
	if existing != nil {
		response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Database already seeded"})
		return
	}

	hash, err := argon2id.CreateHash("admin123", argon2id.DefaultParams)
	if err != nil {
		response.InternalError(w, "Seed failed")
		return
	}
	if _, err := h.Admins.Create(r.Context(), "admin@yourjourney.local", "admin", hash); err != nil {
		logger.ErrorContext(r.Context(), "failed to seed admin", "error", err)
		response.InternalError(w, "Seed failed")
		return
	}

	_, err = h.Properties.Create(r.Context(), &domain.PropertyCreateReq{
		Name:                "Casa Brezza",
		Slug:                "casa-brezza",
		WifiName:            "CasaBrezzaWifi",
		WifiPassword:        "Benvenuti2024",
		CheckinTime:         "15:00 - 20:00",
		CheckinInstructions: "Collect the keys from the lockbox next to the door. The code is sent via WhatsApp on arrival day.",
		CheckoutTime:        "By 10:00",
		CheckoutInstructions: "Leave the keys on the kitchen table, close all windows and take the rubbish to the shared bins.",
		HouseRules: []string{
			"No smoking indoors",
			"No parties or events",
			"Quiet hours from 23:00 to 8:00",
			"Pets allowed by prior agreement",
			"Do not exceed the declared number of guests",
		},
		HostName:  "Marco",
		HostPhone: "+393293236473",
		EmergencyContacts: []domain.EmergencyContact{
			{Name: "Emergency services", Phone: "112"},
			{Name: "Medical guard Porto Cesareo", Phone: "0833 569 111"},
		},
		FAQ: []domain.FAQEntry{
			{Question: "How does the air conditioning work?", Answer: "The remote is in the nightstand drawer. Set 24°C max for best comfort."},
			{Question: "Where do I put the rubbish?", Answer: "Sorted-waste bins are in the shared courtyard. The collection calendar is on the fridge."},
			{Question: "Is there parking?", Answer: "Yes, a private spot in the inner courtyard."},
		},
		ImageURL: "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800",
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to seed property", "error", err)
		response.InternalError(w, "Seed failed")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Database seeded successfully",
		"admin_credentials": map[string]string{
			"email":    "admin@yourjourney.local",
			"password": "admin123",
		},
	})
}
