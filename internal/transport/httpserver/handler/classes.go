package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	classesdomain "studio-admin/internal/domain/classes"
)

type scheduleEntryRequest struct {
	Weekday         *int   `json:"weekday" validate:"required,min=0,max=6"`
	Start           string `json:"start" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" validate:"gt=0,lte=600"`
	Room            string `json:"room" validate:"max=60"`
}

type detailsStepRequest struct {
	ID           string `json:"id" validate:"omitempty,uuid"`
	Name         string `json:"name" validate:"required,max=120"`
	Description  string `json:"description" validate:"required,max=4000"`
	InstructorID string `json:"instructor_id" validate:"required"`
}

type mediaStepRequest struct {
	ID       string `json:"id" validate:"omitempty,uuid"`
	ImageURL string `json:"image_url" validate:"required,url"`
	VideoURL string `json:"video_url" validate:"required,url"`
}

type scheduleStepRequest struct {
	ID       string                 `json:"id" validate:"omitempty,uuid"`
	Schedule []scheduleEntryRequest `json:"schedule" validate:"required,min=1,dive"`
}

type pricingStepRequest struct {
	ID            string   `json:"id" validate:"omitempty,uuid"`
	Price         float64  `json:"price" validate:"gt=0"`
	PromotionID   *string  `json:"promotion_id"`
	MembershipIDs []string `json:"membership_ids"`
}

type statusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type membershipIDsRequest struct {
	MembershipIDs []string `json:"membership_ids" validate:"required"`
}

type classResponse struct {
	classesdomain.Class
	MembershipIDs []string `json:"membership_ids"`
	Status        string   `json:"status"`
	ResumeStep    int      `json:"resume_step"`
}

type draftResponse struct {
	ID         string        `json:"id"`
	Class      classResponse `json:"class"`
	ResumeStep int           `json:"resume_step"`
	NextStep   string        `json:"next_step"`
}

type resumeStepResponse struct {
	StepIndex int    `json:"step_index"`
	Step      string `json:"step"`
}

type activateResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

type deleteClassResponse struct {
	MediaURLsToDelete []string `json:"media_urls_to_delete"`
	PendingMedia      []string `json:"pending_media"`
}

type changedResponse struct {
	Changed bool `json:"changed"`
}

func (h *Handlers) UpsertClassDraft(w http.ResponseWriter, r *http.Request) {
	step, ok := classesdomain.ParseStep(chi.URLParam(r, "step"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_step", "step must be one of details, media, schedule, pricing")
		return
	}

	input, id, ok := decodeStep(w, r, step)
	if !ok {
		return
	}

	class, err := h.Classes.UpsertDraft(r.Context(), input, id)
	if err != nil {
		h.writeServiceError(w, "classes.upsert_draft", err, "step", step.String(), "class_id", id)
		return
	}

	response := newClassResponse(class.Class, class.MembershipIDs)
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, draftResponse{
		ID:         class.ID,
		Class:      response,
		ResumeStep: response.ResumeStep,
		NextStep:   classesdomain.Step(response.ResumeStep).String(),
	})
}

func decodeStep(w http.ResponseWriter, r *http.Request, step classesdomain.Step) (classesdomain.StepInput, string, bool) {
	switch step {
	case classesdomain.StepDetails:
		var req detailsStepRequest
		if !bind(w, r, &req) {
			return nil, "", false
		}
		return classesdomain.DetailsInput{
			Name:         strings.TrimSpace(req.Name),
			Description:  strings.TrimSpace(req.Description),
			InstructorID: strings.TrimSpace(req.InstructorID),
		}, req.ID, true
	case classesdomain.StepMedia:
		var req mediaStepRequest
		if !bind(w, r, &req) {
			return nil, "", false
		}
		return classesdomain.MediaInput{
			ImageURL: strings.TrimSpace(req.ImageURL),
			VideoURL: strings.TrimSpace(req.VideoURL),
		}, req.ID, true
	case classesdomain.StepSchedule:
		var req scheduleStepRequest
		if !bind(w, r, &req) {
			return nil, "", false
		}
		entries := make([]classesdomain.ScheduleEntry, 0, len(req.Schedule))
		for _, entry := range req.Schedule {
			entries = append(entries, classesdomain.ScheduleEntry{
				Weekday:         *entry.Weekday,
				Start:           entry.Start,
				DurationMinutes: entry.DurationMinutes,
				Room:            strings.TrimSpace(entry.Room),
			})
		}
		return classesdomain.ScheduleInput{Entries: entries}, req.ID, true
	case classesdomain.StepPricing:
		var req pricingStepRequest
		if !bind(w, r, &req) {
			return nil, "", false
		}
		promotionID := req.PromotionID
		if promotionID != nil {
			trimmed := strings.TrimSpace(*promotionID)
			promotionID = &trimmed
			if trimmed == "" {
				promotionID = nil
			}
		}
		return classesdomain.PricingInput{
			Price:         req.Price,
			PromotionID:   promotionID,
			MembershipIDs: req.MembershipIDs,
		}, req.ID, true
	default:
		writeError(w, http.StatusBadRequest, "invalid_step", "unknown step")
		return nil, "", false
	}
}

func (h *Handlers) ListClasses(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePage(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	status := classesdomain.Status(strings.ToLower(strings.TrimSpace(query.Get("status"))))
	switch status {
	case classesdomain.StatusAll, classesdomain.StatusDraft, classesdomain.StatusActive, classesdomain.StatusInactive:
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "status must be draft, active or inactive")
		return
	}

	items, total, err := h.Classes.List(r.Context(), classesdomain.ListFilter{
		Status: status,
		Search: query.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeServiceError(w, "classes.list", err)
		return
	}
	writeList(w, mapSlice(items, func(item classesdomain.ClassWithMemberships) classResponse {
		return newClassResponse(item.Class, item.MembershipIDs)
	}), total)
}

func (h *Handlers) GetClass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	class, err := h.Classes.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "classes.get", err, "class_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newClassResponse(class.Class, class.MembershipIDs))
}

func (h *Handlers) GetClassResumeStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	class, err := h.Classes.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "classes.resume_step", err, "class_id", id)
		return
	}
	step := classesdomain.ComputeResumeStep(class.Class)
	writeJSON(w, http.StatusOK, resumeStepResponse{StepIndex: int(step), Step: step.String()})
}

func (h *Handlers) ActivateClass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	class, err := h.Classes.Activate(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "classes.activate", err, "class_id", id)
		return
	}
	writeJSON(w, http.StatusOK, activateResponse{ID: class.ID, IsActive: class.IsActive})
}

func (h *Handlers) SetClassStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req statusRequest
	if !bind(w, r, &req) {
		return
	}

	class, err := h.Classes.SetStatus(r.Context(), id, *req.IsActive)
	if err != nil {
		h.writeServiceError(w, "classes.set_status", err, "class_id", id, "is_active", *req.IsActive)
		return
	}
	writeJSON(w, http.StatusOK, newClassResponse(*class, nil))
}

func (h *Handlers) DeleteClass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	urls, err := h.Classes.DeleteDraft(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "classes.delete", err, "class_id", id)
		return
	}

	pending := h.discard(r, urls)
	if len(pending) > 0 {
		h.log.Warn("classes.delete: media cleanup pending", "class_id", id, "pending", len(pending))
	}
	writeJSON(w, http.StatusOK, deleteClassResponse{MediaURLsToDelete: urls, PendingMedia: pending})
}

func (h *Handlers) SyncClassMemberships(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req membershipIDsRequest
	if !bind(w, r, &req) {
		return
	}

	changed, err := h.Classes.SyncMemberships(r.Context(), id, req.MembershipIDs)
	if err != nil {
		h.writeServiceError(w, "classes.sync_memberships", err, "class_id", id)
		return
	}
	writeJSON(w, http.StatusOK, changedResponse{Changed: changed})
}

type catalogClassResponse struct {
	ID             string                        `json:"id"`
	Name           string                        `json:"name"`
	Description    string                        `json:"description"`
	InstructorName string                        `json:"instructor_name"`
	ImageURL       string                        `json:"image_url"`
	VideoURL       string                        `json:"video_url"`
	Schedule       []classesdomain.ScheduleEntry `json:"schedule"`
	Price          float64                       `json:"price"`
	UpdatedAt      time.Time                     `json:"updated_at"`
}

func (h *Handlers) CatalogClasses(w http.ResponseWriter, r *http.Request) {
	items, err := h.Classes.ActiveCatalog(r.Context())
	if err != nil {
		h.writeServiceError(w, "catalog.classes", err)
		return
	}
	result := mapSlice(items, func(class classesdomain.Class) catalogClassResponse {
		schedule := []classesdomain.ScheduleEntry(class.Schedule)
		if schedule == nil {
			schedule = []classesdomain.ScheduleEntry{}
		}
		return catalogClassResponse{
			ID:             class.ID,
			Name:           class.Name,
			Description:    class.Description,
			InstructorName: class.InstructorName,
			ImageURL:       class.ImageURL,
			VideoURL:       class.VideoURL,
			Schedule:       schedule,
			Price:          class.Price,
			UpdatedAt:      class.UpdatedAt,
		}
	})
	writeList(w, result, int64(len(result)))
}

func newClassResponse(class classesdomain.Class, membershipIDs []string) classResponse {
	if membershipIDs == nil {
		membershipIDs = []string{}
	}
	if class.Schedule == nil {
		class.Schedule = []classesdomain.ScheduleEntry{}
	}
	return classResponse{
		Class:         class,
		MembershipIDs: membershipIDs,
		Status:        classStatus(class),
		ResumeStep:    int(classesdomain.ComputeResumeStep(class)),
	}
}

func classStatus(class classesdomain.Class) string {
	switch {
	case class.IsActive:
		return string(classesdomain.StatusActive)
	case class.IsCompleted:
		return string(classesdomain.StatusInactive)
	default:
		return string(classesdomain.StatusDraft)
	}
}
