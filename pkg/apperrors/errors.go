package apperrors

import "errors"

// Sentinel errors for the stable error kinds surfaced to API callers.
// Services wrap these with context via fmt.Errorf("%w: ...") and handlers
// map them to HTTP status codes with errors.Is. Anything that does not
// match one of these is treated as an internal error: the caller gets a
// generic message and the full cause is logged server-side only.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrInvalidTransition = errors.New("invalid status transition")
)
