package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	adminsdomain "studio-admin/internal/domain/admins"
	"studio-admin/internal/transport/httpserver/middleware"
)

type createAdminRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"required,max=120"`
	Role        string `json:"role" validate:"required,oneof=owner admin staff"`
}

type updateAdminRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=120"`
	Role        string `json:"role" validate:"required,oneof=owner admin staff"`
}

type disableAdminRequest struct {
	Disabled *bool `json:"disabled" validate:"required"`
}

type adminResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role})
}

func (h *Handlers) ListAdmins(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	role := adminsdomain.Role(strings.TrimSpace(query.Get("role")))
	if role != "" && !role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid role")
		return
	}

	items, total, err := h.Admins.List(r.Context(), adminsdomain.ListFilter{
		Role:   role,
		Search: query.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeServiceError(w, "admins.list", err)
		return
	}
	writeList(w, mapSlice(items, newAdminResponse), total)
}

func (h *Handlers) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if !bind(w, r, &req) {
		return
	}
	admin, err := h.Admins.Create(r.Context(), adminsdomain.CreateInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        adminsdomain.Role(req.Role),
	})
	if err != nil {
		h.writeServiceError(w, "admins.create", err, "email", req.Email)
		return
	}
	writeJSON(w, http.StatusCreated, newAdminResponse(*admin))
}

func (h *Handlers) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateAdminRequest
	if !bind(w, r, &req) {
		return
	}
	admin, err := h.Admins.Update(r.Context(), id, adminsdomain.UpdateInput{
		DisplayName: req.DisplayName,
		Role:        adminsdomain.Role(req.Role),
	})
	if err != nil {
		h.writeServiceError(w, "admins.update", err, "admin_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newAdminResponse(*admin))
}

func (h *Handlers) DisableAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req disableAdminRequest
	if !bind(w, r, &req) {
		return
	}
	if user, ok := middleware.UserFromContext(r.Context()); ok && user.ID == id && *req.Disabled {
		writeError(w, http.StatusConflict, "conflict", "you cannot disable yourself")
		return
	}
	admin, err := h.Admins.SetDisabled(r.Context(), id, *req.Disabled)
	if err != nil {
		h.writeServiceError(w, "admins.disable", err, "admin_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newAdminResponse(*admin))
}

func (h *Handlers) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if user, ok := middleware.UserFromContext(r.Context()); ok && user.ID == id {
		writeError(w, http.StatusConflict, "conflict", "you cannot delete yourself")
		return
	}
	if err := h.Admins.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "admins.delete", err, "admin_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newAdminResponse(admin adminsdomain.AdminUser) adminResponse {
	return adminResponse{
		ID:          admin.ID,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
		Role:        string(admin.Role),
		Disabled:    admin.Disabled,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
	}
}
