package classes

import "studio-admin/internal/domain/apperr"

var (
	ErrClassNotFound      = apperr.NotFound("class not found")
	ErrDraftNotFound      = apperr.NotFound("draft not found or already active")
	ErrClassActive        = apperr.Conflict("active classes cannot be deleted")
	ErrClassIncomplete    = apperr.Conflict("class is missing required steps")
	ErrInstructorNotFound = apperr.Invalid("instructor_id", "instructor not found")
	ErrPromotionNotFound  = apperr.Invalid("promotion_id", "promotion not found")
	ErrIDRequired         = apperr.Invalid("id", "id is required after the details step")
	ErrUnknownStep        = apperr.Invalid("step", "unknown wizard step")
)
