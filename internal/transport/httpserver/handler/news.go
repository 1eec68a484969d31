package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	newsdomain "studio-admin/internal/domain/news"
)

type newsRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"max=20000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type publishRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}

type newsResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ImageURL    string     `json:"image_url"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	publishedOnly, err := parseBoolParam(r.URL.Query().Get("published"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid published")
		return
	}

	items, total, err := h.News.List(r.Context(), newsdomain.ListFilter{PublishedOnly: publishedOnly, Limit: limit, Offset: offset})
	if err != nil {
		h.writeServiceError(w, "news.list", err)
		return
	}
	writeList(w, mapSlice(items, newNewsResponse), total)
}

func (h *Handlers) GetNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.News.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "news.get", err, "post_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newNewsResponse(*post))
}

func (h *Handlers) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if !bind(w, r, &req) {
		return
	}
	post, err := h.News.Create(r.Context(), req.input())
	if err != nil {
		h.writeServiceError(w, "news.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newNewsResponse(*post))
}

func (h *Handlers) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req newsRequest
	if !bind(w, r, &req) {
		return
	}

	previous, err := h.News.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "news.update", err, "post_id", id)
		return
	}
	post, err := h.News.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeServiceError(w, "news.update", err, "post_id", id)
		return
	}
	if previous.ImageURL != "" && previous.ImageURL != post.ImageURL {
		h.discard(r, []string{previous.ImageURL})
	}
	writeJSON(w, http.StatusOK, newNewsResponse(*post))
}

func (h *Handlers) PublishNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req publishRequest
	if !bind(w, r, &req) {
		return
	}
	post, err := h.News.SetPublished(r.Context(), id, *req.IsPublished)
	if err != nil {
		h.writeServiceError(w, "news.publish", err, "post_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newNewsResponse(*post))
}

func (h *Handlers) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.News.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "news.delete", err, "post_id", id)
		return
	}
	h.discard(r, []string{post.ImageURL})
	w.WriteHeader(http.StatusNoContent)
}

func (req newsRequest) input() newsdomain.Input {
	return newsdomain.Input{Title: req.Title, Body: req.Body, ImageURL: req.ImageURL}
}

func newNewsResponse(post newsdomain.Post) newsResponse {
	return newsResponse{
		ID:          post.ID,
		Title:       post.Title,
		Body:        post.Body,
		ImageURL:    post.ImageURL,
		IsPublished: post.IsPublished,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
