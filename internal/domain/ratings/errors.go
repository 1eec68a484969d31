package ratings

import "studio-admin/internal/domain/apperr"

var ErrRatingNotFound = apperr.NotFound("rating not found")
