package utils

import "errors"

// Sentinel errors for the public API gateway. Handlers and middleware map
// these onto the HTTP status codes of the public contract.
var (
	ErrMissingKey    = errors.New("MISSING_API_KEY")     // 401, x-api-key header absent
	ErrInvalidKey    = errors.New("INVALID_API_KEY")     // 401, no key matches the secret
	ErrInactiveKey   = errors.New("INACTIVE_API_KEY")    // 403, key exists but is disabled
	ErrQuotaExceeded = errors.New("QUOTA_EXCEEDED")      // 429, daily limit reached
	ErrNotFound      = errors.New("NOT_FOUND")           // 404, resource absent or unpublished
	ErrInvalidLogin  = errors.New("INVALID_CREDENTIALS") // 401, admin login failure
)
