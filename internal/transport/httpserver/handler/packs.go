package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	packsdomain "studio-admin/internal/domain/packs"
)

type packRequest struct {
	Name            string   `json:"name" validate:"required,max=120"`
	Description     string   `json:"description" validate:"max=4000"`
	DiscountEnabled bool     `json:"discount_enabled"`
	DiscountPercent float64  `json:"discount_percent" validate:"gte=0,lte=100"`
	IsActive        bool     `json:"is_active"`
	ClassIDs        []string `json:"class_ids"`
}

type pricePreviewRequest struct {
	UnitPrices      []*float64 `json:"unit_prices" validate:"dive,omitnil,gte=0"`
	DiscountEnabled bool       `json:"discount_enabled"`
	DiscountPercent float64    `json:"discount_percent"`
}

type pricePreviewResponse struct {
	Price float64 `json:"price"`
}

type packResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountEnabled bool      `json:"discount_enabled"`
	DiscountPercent float64   `json:"discount_percent"`
	IsActive        bool      `json:"is_active"`
	ClassIDs        []string  `json:"class_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (h *Handlers) ListPacks(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid active")
		return
	}

	items, total, err := h.Packs.List(r.Context(), packsdomain.ListFilter{ActiveOnly: activeOnly, Limit: limit, Offset: offset})
	if err != nil {
		h.writeServiceError(w, "packs.list", err)
		return
	}
	writeList(w, mapSlice(items, newPackResponse), total)
}

func (h *Handlers) GetPack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pack, err := h.Packs.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "packs.get", err, "pack_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newPackResponse(*pack))
}

func (h *Handlers) CreatePack(w http.ResponseWriter, r *http.Request) {
	var req packRequest
	if !bind(w, r, &req) {
		return
	}

	pack, err := h.Packs.Create(r.Context(), packsdomain.CreateInput{
		Name:            req.Name,
		Description:     req.Description,
		DiscountEnabled: req.DiscountEnabled,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
		ClassIDs:        req.ClassIDs,
	})
	if err != nil {
		h.writeServiceError(w, "packs.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newPackResponse(*pack))
}

func (h *Handlers) UpdatePack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req packRequest
	if !bind(w, r, &req) {
		return
	}

	pack, err := h.Packs.Update(r.Context(), packsdomain.UpdateInput{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		DiscountEnabled: req.DiscountEnabled,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
		ClassIDs:        req.ClassIDs,
	})
	if err != nil {
		h.writeServiceError(w, "packs.update", err, "pack_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newPackResponse(*pack))
}

func (h *Handlers) DeletePack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Packs.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "packs.delete", err, "pack_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) PackPricePreview(w http.ResponseWriter, r *http.Request) {
	var req pricePreviewRequest
	if !bind(w, r, &req) {
		return
	}
	price := h.Packs.PricePreview(req.UnitPrices, req.DiscountEnabled, req.DiscountPercent)
	writeJSON(w, http.StatusOK, pricePreviewResponse{Price: price})
}

func newPackResponse(pack packsdomain.PackWithClasses) packResponse {
	classIDs := pack.ClassIDs
	if classIDs == nil {
		classIDs = []string{}
	}
	return packResponse{
		ID:              pack.ID,
		Name:            pack.Name,
		Description:     pack.Description,
		Price:           pack.Price,
		DiscountEnabled: pack.DiscountEnabled,
		DiscountPercent: pack.DiscountPercent,
		IsActive:        pack.IsActive,
		ClassIDs:        classIDs,
		CreatedAt:       pack.CreatedAt,
		UpdatedAt:       pack.UpdatedAt,
	}
}
