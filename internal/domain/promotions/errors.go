package promotions

import "studio-admin/internal/domain/apperr"

var (
	ErrPromotionNotFound = apperr.NotFound("promotion not found")
	ErrCodeTaken         = apperr.Conflict("promotion code already exists")
	ErrTitleRequired     = apperr.Invalid("title", "title is required")
	ErrCodeInvalid       = apperr.Invalid("code", "code must be 3-32 letters, digits, dashes or underscores")
	ErrDiscountInvalid   = apperr.Invalid("discount_percent", "discount must be between 0 and 100")
	ErrWindowInvalid     = apperr.Invalid("ends_at", "ends_at must be after starts_at")
)
