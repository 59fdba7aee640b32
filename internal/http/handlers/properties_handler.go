package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourjourney/guest-portal/internal/http/response"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// PropertiesHandler serves the public property snapshot the guest
// portal renders from.
type PropertiesHandler struct {
	Properties postgres.PropertyRepo
}

func NewPropertiesHandler(properties postgres.PropertyRepo) *PropertiesHandler {
	return &PropertiesHandler{Properties: properties}
}

func (h *PropertiesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{slug}", h.getBySlug)
	return r
}

func (h *PropertiesHandler) getBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.Properties.GetBySlug(r.Context(), slug)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load property", "slug", slug, "error", err)
		response.InternalError(w, "Failed to load property")
		return
	}
	if p == nil {
		response.NotFound(w, "Property not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, p)
}
