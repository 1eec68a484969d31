package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	ratingsdomain "studio-admin/internal/domain/ratings"
)

type ratingResponse struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ratingSummaryResponse struct {
	ClassID   string  `json:"class_id"`
	ClassName string  `json:"class_name"`
	Count     int64   `json:"count"`
	Average   float64 `json:"average"`
}

func (h *Handlers) ListRatings(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	maxScore, err := parseIntParam(query.Get("max_score"), 0)
	if err != nil || maxScore > 5 {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid max_score")
		return
	}

	items, total, err := h.Ratings.List(r.Context(), ratingsdomain.ListFilter{
		ClassID:  query.Get("class_id"),
		MaxScore: maxScore,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.writeServiceError(w, "ratings.list", err)
		return
	}
	writeList(w, mapSlice(items, func(rating ratingsdomain.Rating) ratingResponse {
		return ratingResponse{
			ID:        rating.ID,
			ClassID:   rating.ClassID,
			UserID:    rating.UserID,
			UserName:  rating.UserName,
			Score:     rating.Score,
			Comment:   rating.Comment,
			CreatedAt: rating.CreatedAt,
		}
	}), total)
}

func (h *Handlers) RatingSummaries(w http.ResponseWriter, r *http.Request) {
	classID := strings.TrimSpace(r.URL.Query().Get("class_id"))
	items, err := h.Ratings.Summaries(r.Context(), classID)
	if err != nil {
		h.writeServiceError(w, "ratings.summary", err, "class_id", classID)
		return
	}
	result := mapSlice(items, func(summary ratingsdomain.Summary) ratingSummaryResponse {
		return ratingSummaryResponse{
			ClassID:   summary.ClassID,
			ClassName: summary.ClassName,
			Count:     summary.Count,
			Average:   summary.Average,
		}
	})
	writeList(w, result, int64(len(result)))
}

func (h *Handlers) DeleteRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Ratings.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "ratings.delete", err, "rating_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
