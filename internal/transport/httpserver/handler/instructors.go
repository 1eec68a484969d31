package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	instructorsdomain "studio-admin/internal/domain/instructors"
)

type instructorRequest struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Bio      string   `json:"bio" validate:"max=4000"`
	PhotoURL string   `json:"photo_url" validate:"omitempty,url"`
	Styles   []string `json:"styles" validate:"dive,required,max=40"`
	IsActive bool     `json:"is_active"`
}

type classIDsRequest struct {
	ClassIDs []string `json:"class_ids" validate:"required"`
}

type instructorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	PhotoURL  string    `json:"photo_url"`
	Styles    []string  `json:"styles"`
	IsActive  bool      `json:"is_active"`
	ClassIDs  []string  `json:"class_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handlers) ListInstructors(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := h.Instructors.List(r.Context(), instructorsdomain.ListFilter{
		ActiveOnly: activeOnly,
		Style:      query.Get("style"),
		Search:     query.Get("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeServiceError(w, "instructors.list", err)
		return
	}
	writeList(w, mapSlice(items, func(instructor instructorsdomain.Instructor) instructorResponse {
		return newInstructorResponse(instructor, nil)
	}), total)
}

func (h *Handlers) GetInstructor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	instructor, err := h.Instructors.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "instructors.get", err, "instructor_id", id)
		return
	}
	classIDs := instructor.ClassIDs
	if classIDs == nil {
		classIDs = []string{}
	}
	writeJSON(w, http.StatusOK, newInstructorResponse(instructor.Instructor, classIDs))
}

func (h *Handlers) CreateInstructor(w http.ResponseWriter, r *http.Request) {
	var req instructorRequest
	if !bind(w, r, &req) {
		return
	}
	instructor, err := h.Instructors.Create(r.Context(), req.input())
	if err != nil {
		h.writeServiceError(w, "instructors.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newInstructorResponse(*instructor, nil))
}

func (h *Handlers) UpdateInstructor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req instructorRequest
	if !bind(w, r, &req) {
		return
	}

	previous, err := h.Instructors.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "instructors.update", err, "instructor_id", id)
		return
	}
	instructor, err := h.Instructors.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeServiceError(w, "instructors.update", err, "instructor_id", id)
		return
	}
	if previous.PhotoURL != "" && previous.PhotoURL != instructor.PhotoURL {
		h.discard(r, []string{previous.PhotoURL})
	}
	writeJSON(w, http.StatusOK, newInstructorResponse(*instructor, nil))
}

func (h *Handlers) DeleteInstructor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	instructor, err := h.Instructors.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "instructors.delete", err, "instructor_id", id)
		return
	}
	if err := h.Instructors.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "instructors.delete", err, "instructor_id", id)
		return
	}
	h.discard(r, []string{instructor.PhotoURL})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AssignInstructorClasses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req classIDsRequest
	if !bind(w, r, &req) {
		return
	}
	changed, err := h.Instructors.AssignClasses(r.Context(), id, req.ClassIDs)
	if err != nil {
		h.writeServiceError(w, "instructors.assign_classes", err, "instructor_id", id)
		return
	}
	writeJSON(w, http.StatusOK, changedResponse{Changed: changed})
}

func (req instructorRequest) input() instructorsdomain.Input {
	return instructorsdomain.Input{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
		Styles:   req.Styles,
		IsActive: req.IsActive,
	}
}

func newInstructorResponse(instructor instructorsdomain.Instructor, classIDs []string) instructorResponse {
	styles := []string(instructor.Styles)
	if styles == nil {
		styles = []string{}
	}
	return instructorResponse{
		ID:        instructor.ID,
		Name:      instructor.Name,
		Email:     instructor.Email,
		Bio:       instructor.Bio,
		PhotoURL:  instructor.PhotoURL,
		Styles:    styles,
		IsActive:  instructor.IsActive,
		ClassIDs:  classIDs,
		CreatedAt: instructor.CreatedAt,
		UpdatedAt: instructor.UpdatedAt,
	}
}
