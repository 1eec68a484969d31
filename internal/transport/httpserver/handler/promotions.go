package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	promotionsdomain "studio-admin/internal/domain/promotions"
)

type promotionRequest struct {
	Title           string    `json:"title" validate:"required,max=120"`
	Description     string    `json:"description" validate:"max=4000"`
	Code            string    `json:"code" validate:"required,min=3,max=32"`
	DiscountPercent float64   `json:"discount_percent" validate:"gte=0,lte=100"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	ImageURL        string    `json:"image_url" validate:"omitempty,url"`
	IsActive        bool      `json:"is_active"`
}

type promotionResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Code            string    `json:"code"`
	DiscountPercent float64   `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	ImageURL        string    `json:"image_url"`
	IsActive        bool      `json:"is_active"`
	Running         bool      `json:"running"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (h *Handlers) ListPromotions(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	filter := promotionsdomain.ListFilter{Limit: limit, Offset: offset}
	running, err := parseBoolParam(r.URL.Query().Get("running"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid running")
		return
	}
	if running {
		now := time.Now().UTC()
		filter.RunningAt = &now
	}

	items, total, err := h.Promotions.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "promotions.list", err)
		return
	}
	writeList(w, mapSlice(items, newPromotionResponse), total)
}

func (h *Handlers) GetPromotion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	promotion, err := h.Promotions.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "promotions.get", err, "promotion_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newPromotionResponse(*promotion))
}

func (h *Handlers) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req promotionRequest
	if !bind(w, r, &req) {
		return
	}
	promotion, err := h.Promotions.Create(r.Context(), req.input())
	if err != nil {
		h.writeServiceError(w, "promotions.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newPromotionResponse(*promotion))
}

func (h *Handlers) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req promotionRequest
	if !bind(w, r, &req) {
		return
	}

	previous, err := h.Promotions.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "promotions.update", err, "promotion_id", id)
		return
	}
	promotion, err := h.Promotions.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeServiceError(w, "promotions.update", err, "promotion_id", id)
		return
	}
	if previous.ImageURL != "" && previous.ImageURL != promotion.ImageURL {
		h.discard(r, []string{previous.ImageURL})
	}
	writeJSON(w, http.StatusOK, newPromotionResponse(*promotion))
}

func (h *Handlers) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	promotion, err := h.Promotions.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "promotions.delete", err, "promotion_id", id)
		return
	}
	if err := h.Promotions.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "promotions.delete", err, "promotion_id", id)
		return
	}
	h.discard(r, []string{promotion.ImageURL})
	w.WriteHeader(http.StatusNoContent)
}

func (req promotionRequest) input() promotionsdomain.Input {
	return promotionsdomain.Input{
		Title:           req.Title,
		Description:     req.Description,
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
	}
}

func newPromotionResponse(p promotionsdomain.Promotion) promotionResponse {
	return promotionResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		StartsAt:        p.StartsAt,
		EndsAt:          p.EndsAt,
		ImageURL:        p.ImageURL,
		IsActive:        p.IsActive,
		Running:         p.Running(time.Now().UTC()),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
