package handlers

const (
	SessionCookieName = "session_id"
	CSRFHeaderName    = "X-CSRF-Token"

	ErrInvalidJSONBody     = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrNotFound            = "Not found"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
)
