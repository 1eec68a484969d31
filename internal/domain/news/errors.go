package news

import "studio-admin/internal/domain/apperr"

var (
	ErrPostNotFound  = apperr.NotFound("news post not found")
	ErrTitleRequired = apperr.Invalid("title", "title is required")
)
