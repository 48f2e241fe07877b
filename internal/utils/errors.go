package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrTooManyAttempts    = errors.New("TOO_MANY_ATTEMPTS")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrSlideshowNotFound  = errors.New("SLIDESHOW_NOT_FOUND")
	ErrProfileNotFound    = errors.New("PROFILE_NOT_FOUND")
	ErrEmptySelection     = errors.New("EMPTY_SELECTION")
	ErrImageTooLarge      = errors.New("IMAGE_TOO_LARGE")
	ErrUploadFailed       = errors.New("UPLOAD_FAILED")
)
