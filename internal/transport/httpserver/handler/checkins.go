package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	checkinsdomain "studio-admin/internal/domain/checkins"
)

type createCheckInRequest struct {
	ClassID     string     `json:"class_id" validate:"required,uuid"`
	UserID      string     `json:"user_id" validate:"required,max=128"`
	UserName    string     `json:"user_name" validate:"max=120"`
	CheckedInAt *time.Time `json:"checked_in_at"`
}

type checkInResponse struct {
	ID          string    `json:"id"`
	ClassID     *string   `json:"class_id"`
	ClassName   string    `json:"class_name"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

func (h *Handlers) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	from, err := parseTimeParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from")
		return
	}
	to, err := parseTimeParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to")
		return
	}

	items, total, err := h.CheckIns.List(r.Context(), checkinsdomain.ListFilter{
		ClassID: query.Get("class_id"),
		From:    from,
		To:      to,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.writeServiceError(w, "checkins.list", err)
		return
	}
	writeList(w, mapSlice(items, newCheckInResponse), total)
}

func (h *Handlers) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var req createCheckInRequest
	if !bind(w, r, &req) {
		return
	}
	checkIn, err := h.CheckIns.Create(r.Context(), checkinsdomain.CreateInput{
		ClassID:     req.ClassID,
		UserID:      req.UserID,
		UserName:    req.UserName,
		CheckedInAt: req.CheckedInAt,
	})
	if err != nil {
		h.writeServiceError(w, "checkins.create", err, "class_id", req.ClassID)
		return
	}
	writeJSON(w, http.StatusCreated, newCheckInResponse(*checkIn))
}

func (h *Handlers) DeleteCheckIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.CheckIns.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "checkins.delete", err, "check_in_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newCheckInResponse(checkIn checkinsdomain.CheckIn) checkInResponse {
	return checkInResponse{
		ID:          checkIn.ID,
		ClassID:     checkIn.ClassID,
		ClassName:   checkIn.ClassName,
		UserID:      checkIn.UserID,
		UserName:    checkIn.UserName,
		CheckedInAt: checkIn.CheckedInAt,
	}
}
