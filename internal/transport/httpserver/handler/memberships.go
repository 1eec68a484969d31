package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	membershipsdomain "studio-admin/internal/domain/memberships"
)

type membershipRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Description  string  `json:"description" validate:"max=4000"`
	Price        float64 `json:"price" validate:"gte=0"`
	DurationDays int     `json:"duration_days" validate:"gt=0"`
	ClassLimit   int     `json:"class_limit" validate:"gte=0"`
	IsActive     bool    `json:"is_active"`
}

type membershipResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration_days"`
	ClassLimit   int       `json:"class_limit"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (h *Handlers) ListMemberships(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	activeOnly, err := parseBoolParam(query.Get("active"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid active")
		return
	}

	items, total, err := h.Memberships.List(r.Context(), membershipsdomain.ListFilter{
		ActiveOnly: activeOnly,
		Search:     query.Get("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeServiceError(w, "memberships.list", err)
		return
	}
	writeList(w, mapSlice(items, newMembershipResponse), total)
}

func (h *Handlers) GetMembership(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	membership, err := h.Memberships.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "memberships.get", err, "membership_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newMembershipResponse(*membership))
}

func (h *Handlers) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if !bind(w, r, &req) {
		return
	}
	membership, err := h.Memberships.Create(r.Context(), req.input())
	if err != nil {
		h.writeServiceError(w, "memberships.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newMembershipResponse(*membership))
}

func (h *Handlers) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req membershipRequest
	if !bind(w, r, &req) {
		return
	}
	membership, err := h.Memberships.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeServiceError(w, "memberships.update", err, "membership_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newMembershipResponse(*membership))
}

func (h *Handlers) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Memberships.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "memberships.delete", err, "membership_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req membershipRequest) input() membershipsdomain.Input {
	return membershipsdomain.Input{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		ClassLimit:   req.ClassLimit,
		IsActive:     req.IsActive,
	}
}

func newMembershipResponse(m membershipsdomain.Membership) membershipResponse {
	return membershipResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		DurationDays: m.DurationDays,
		ClassLimit:   m.ClassLimit,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
