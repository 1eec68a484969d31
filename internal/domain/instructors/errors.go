package instructors

import "studio-admin/internal/domain/apperr"

var (
	ErrInstructorNotFound = apperr.NotFound("instructor not found")
	ErrEmailTaken         = apperr.Conflict("instructor email already exists")
	ErrNameRequired       = apperr.Invalid("name", "name is required")
	ErrEmailInvalid       = apperr.Invalid("email", "valid email is required")
)
