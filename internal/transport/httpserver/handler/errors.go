package handler

import (
	"errors"
	"net/http"

	"studio-admin/internal/domain/apperr"
	"studio-admin/internal/identity"
	"studio-admin/internal/storage"
)

// writeServiceError maps a service error onto the HTTP error envelope.
// Expected failures are logged as business errors, everything else as
// internal errors.
func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	kind, field, message := apperr.Public(err)
	switch {
	case errors.Is(kind, apperr.ErrValidation):
		h.log.BusinessError(op+": validation failed", err, args...)
		writeFieldError(w, field, message)
	case errors.Is(kind, apperr.ErrNotFound):
		h.log.BusinessError(op+": not found", err, args...)
		writeError(w, http.StatusNotFound, "not_found", message)
	case errors.Is(kind, apperr.ErrConflict):
		h.log.BusinessError(op+": conflict", err, args...)
		writeError(w, http.StatusConflict, "conflict", message)
	case errors.Is(kind, apperr.ErrUnavailable):
		h.log.InternalError(op+": store unavailable", err, args...)
		writeError(w, http.StatusServiceUnavailable, "unavailable", message)
	case errors.Is(err, storage.ErrNotConfigured):
		h.log.InternalError(op+": media storage not configured", err, args...)
		writeError(w, http.StatusServiceUnavailable, "media_not_configured", "media storage is not configured")
	case errors.Is(err, identity.ErrNotConfigured):
		h.log.InternalError(op+": identity provider not configured", err, args...)
		writeError(w, http.StatusServiceUnavailable, "identity_not_configured", "identity provider is not configured")
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
