package packs

import "studio-admin/internal/domain/apperr"

var (
	ErrPackNotFound    = apperr.NotFound("class pack not found")
	ErrNameRequired    = apperr.Invalid("name", "name is required")
	ErrDiscountInvalid = apperr.Invalid("discount_percent", "discount must be between 0 and 100")
)
