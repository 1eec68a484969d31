package handler

import (
	"errors"
	"io"
	"net/http"

	mediadomain "studio-admin/internal/domain/media"
)

const (
	multipartMemory = 8 << 20
	// room for the multipart envelope and the other form fields
	multipartOverhead = 1 << 20
)

type presignRequest struct {
	Folder      string `json:"folder" validate:"required"`
	Filename    string `json:"filename" validate:"required,max=200"`
	ContentType string `json:"content_type" validate:"required"`
}

type deleteMediaRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,required"`
}

type uploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type deleteMediaResponse struct {
	Deleted int      `json:"deleted"`
	Failed  []string `json:"failed"`
}

func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if limit := h.Media.MaxUploadBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFieldError(w, "file", "file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeFieldError(w, "file", "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "could not read file")
		return
	}

	folder := r.FormValue("folder")
	uploaded, err := h.Media.Upload(r.Context(), mediadomain.UploadInput{
		Folder:      folder,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.writeServiceError(w, "media.upload", err, "folder", folder, "filename", header.Filename)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{
		URL:         uploaded.URL,
		Key:         uploaded.Key,
		ContentType: uploaded.ContentType,
		Size:        uploaded.Size,
	})
}

func (h *Handlers) PresignMedia(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if !bind(w, r, &req) {
		return
	}
	presigned, err := h.Media.Presign(r.Context(), req.Folder, req.Filename, req.ContentType)
	if err != nil {
		h.writeServiceError(w, "media.presign", err, "folder", req.Folder)
		return
	}
	writeJSON(w, http.StatusOK, presigned)
}

func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req deleteMediaRequest
	if !bind(w, r, &req) {
		return
	}
	result, err := h.Media.Delete(r.Context(), req.URLs)
	if err != nil {
		h.writeServiceError(w, "media.delete", err)
		return
	}
	failed := result.Failed
	if failed == nil {
		failed = []string{}
	}
	writeJSON(w, http.StatusOK, deleteMediaResponse{Deleted: result.Deleted, Failed: failed})
}
