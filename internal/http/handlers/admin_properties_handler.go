package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourjourney/guest-portal/internal/domain"
	"github.com/yourjourney/guest-portal/internal/http/response"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/internal/utils"
	"github.com/yourjourney/guest-portal/pkg/events"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// AdminPropertiesHandler is the CRUD surface behind the admin console.
type AdminPropertiesHandler struct {
	Properties postgres.PropertyRepo
	Events     events.Publisher
}

func NewAdminPropertiesHandler(properties postgres.PropertyRepo, bus events.Publisher) *AdminPropertiesHandler {
	return &AdminPropertiesHandler{Properties: properties, Events: bus}
}

func (h *AdminPropertiesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func validateProperty(in *domain.PropertyCreateReq) string {
	in.Name = utils.NormalizeString(in.Name)
	in.Slug = utils.NormalizeString(in.Slug)
	if in.Name == "" {
		return "Name is required"
	}
	if in.Slug == "" {
		return "Slug is required"
	}
	return ""
}

func (h *AdminPropertiesHandler) list(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Properties.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list properties", "error", err)
		response.InternalError(w, "Failed to list properties")
		return
	}
	if ps == nil {
		ps = []domain.Property{}
	}
	response.WriteJSON(w, http.StatusOK, ps)
}

func (h *AdminPropertiesHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.PropertyCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if msg := validateProperty(&in); msg != "" {
		response.BadRequest(w, msg)
		return
	}

	p, err := h.Properties.Create(r.Context(), &in)
	if err != nil {
		if isUniqueViolation(err) {
			response.WriteError(w, http.StatusConflict, "Slug already in use", response.CodeSlugExists)
			return
		}
		logger.ErrorContext(r.Context(), "failed to create property", "error", err)
		response.InternalError(w, "Failed to create property")
		return
	}

	h.publishUpdated(r, p)
	response.WriteJSON(w, http.StatusCreated, p)
}

func (h *AdminPropertiesHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in domain.PropertyCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if msg := validateProperty(&in); msg != "" {
		response.BadRequest(w, msg)
		return
	}

	p, err := h.Properties.Update(r.Context(), id, &in)
	if err != nil {
		if isUniqueViolation(err) {
			response.WriteError(w, http.StatusConflict, "Slug already in use", response.CodeSlugExists)
			return
		}
		logger.ErrorContext(r.Context(), "failed to update property", "id", id, "error", err)
		response.InternalError(w, "Failed to update property")
		return
	}
	if p == nil {
		response.NotFound(w, "Property not found")
		return
	}

	h.publishUpdated(r, p)
	response.WriteJSON(w, http.StatusOK, p)
}

func (h *AdminPropertiesHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.Properties.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete property", "id", id, "error", err)
		response.InternalError(w, "Failed to delete property")
		return
	}
	if !ok {
		response.NotFound(w, "Property not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminPropertiesHandler) publishUpdated(r *http.Request, p *domain.Property) {
	if h.Events == nil {
		return
	}
	err := h.Events.Publish(r.Context(), events.PropertyUpdated, events.PropertyUpdatedEvent{
		PropertyID: p.ID,
		Slug:       p.Slug,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		logger.WarnContext(r.Context(), "failed to publish property event", "error", err)
	}
}
