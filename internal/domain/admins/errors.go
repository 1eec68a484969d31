package admins

import "studio-admin/internal/domain/apperr"

var (
	ErrAdminNotFound    = apperr.NotFound("admin user not found")
	ErrEmailTaken       = apperr.Conflict("admin email already exists")
	ErrLastOwner        = apperr.Conflict("the last active owner cannot be removed, disabled or demoted")
	ErrEmailInvalid     = apperr.Invalid("email", "valid email is required")
	ErrPasswordTooShort = apperr.Invalid("password", "password must be at least 8 characters")
	ErrRoleInvalid      = apperr.Invalid("role", "role must be owner, admin or staff")
	ErrNameRequired     = apperr.Invalid("display_name", "display name is required")
)
