package handlers

// Error codes carried in ErrorResponse.Code. Generic codes follow the HTTP
// status; the rest name a domain outcome the status alone cannot convey.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeTooLarge         = "payload_too_large"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"

	// Room name already taken. Answered with 400.
	ErrCodeConflict = "conflict"
	// Second like of the same match post by the same user.
	ErrCodeAlreadyLiked = "already_liked"
)
