package media

import "studio-admin/internal/domain/apperr"

var (
	ErrEmptyFile       = apperr.Invalid("file", "file is empty")
	ErrFileTooLarge    = apperr.Invalid("file", "file is too large")
	ErrUnsupportedType = apperr.Invalid("file", "only image and video files are accepted")
	ErrFolderInvalid   = apperr.Invalid("folder", "folder must be one of classes, instructors, promotions, news")
	ErrNoURLs          = apperr.Invalid("urls", "at least one url is required")
)
