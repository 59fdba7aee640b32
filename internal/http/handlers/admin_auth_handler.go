package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/yourjourney/guest-portal/internal/domain"
	mw "github.com/yourjourney/guest-portal/internal/http/middleware"
	"github.com/yourjourney/guest-portal/internal/http/response"
	"github.com/yourjourney/guest-portal/internal/platform/auth"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/internal/utils"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

type AdminAuthHandler struct {
	Admins   postgres.AdminRepo
	TokenTTL time.Duration
}

func NewAdminAuthHandler(admins postgres.AdminRepo, tokenTTL time.Duration) *AdminAuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AdminAuthHandler{Admins: admins, TokenTTL: tokenTTL}
}

// Login handles POST /api/admin/login.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.AdminLoginReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	in.Email = utils.NormalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		response.BadRequest(w, "Email and password are required")
		return
	}

	a, err := h.Admins.FindByEmail(r.Context(), in.Email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to look up admin", "error", err)
		response.InternalError(w, "Login failed")
		return
	}
	if a == nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password, a.PasswordHash)
	if err != nil {
		// A stored hash that cannot be parsed is a data problem, not a
		// bad password; log it so the row can be repaired.
		logger.ErrorContext(r.Context(), "stored admin password hash is unreadable", "admin_id", a.ID, "error", err)
		response.Unauthorized(w, "Invalid credentials")
		return
	}
	if !ok {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := auth.NewAdminToken(a.ID, a.Email, h.TokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to sign admin token", "error", err)
		response.InternalError(w, "Login failed")
		return
	}

	out := domain.AdminLoginRes{Token: token}
	out.Admin.ID = a.ID
	out.Admin.Email = a.Email
	out.Admin.Username = a.Username
	response.WriteJSON(w, http.StatusOK, out)
}

// Me handles GET /api/admin/me.
func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing token")
		return
	}

	a, err := h.Admins.FindByID(r.Context(), claims.Sub)
	if err != nil || a == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"id":       a.ID,
		"email":    a.Email,
		"username": a.Username,
	})
}
