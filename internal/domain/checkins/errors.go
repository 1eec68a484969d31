package checkins

import "studio-admin/internal/domain/apperr"

var (
	ErrCheckInNotFound = apperr.NotFound("check-in not found")
	ErrClassNotActive  = apperr.Invalid("class_id", "class not found or not active")
	ErrUserRequired    = apperr.Invalid("user_id", "user is required")
	ErrRangeInvalid    = apperr.Invalid("to", "to must not be before from")
)
