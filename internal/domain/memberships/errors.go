package memberships

import "studio-admin/internal/domain/apperr"

var (
	ErrMembershipNotFound = apperr.NotFound("membership not found")
	ErrNameRequired       = apperr.Invalid("name", "name is required")
	ErrPriceInvalid       = apperr.Invalid("price", "price cannot be negative")
	ErrDurationInvalid    = apperr.Invalid("duration_days", "duration must be positive")
	ErrClassLimitInvalid  = apperr.Invalid("class_limit", "class limit cannot be negative")
)
