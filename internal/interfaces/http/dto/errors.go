package dto

import "net/http"

// Error codes used outside the application services
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps domain and transport error codes to HTTP
// status codes. Codes raised by the application services appear here
// verbatim; anything unknown falls back to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Authentication and account state
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_DISABLED":    http.StatusForbidden,

	// Lookup failures
	ErrCodeNotFound:    http.StatusNotFound,
	"UPLOAD_NOT_FOUND": http.StatusNotFound,

	// Rejected input
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_CATEGORY": http.StatusBadRequest,
	"INVALID_PARENT":   http.StatusBadRequest,
	"INVALID_PRODUCT":  http.StatusBadRequest,
	"INVALID_LOCATION": http.StatusBadRequest,
	"INVALID_CLIENT":   http.StatusBadRequest,

	// Conflicts with existing data
	"ALREADY_EXISTS":     http.StatusConflict,
	"DUPLICATE_SKU":      http.StatusConflict,
	"CIRCULAR_REFERENCE": http.StatusConflict,
	"IN_USE":             http.StatusConflict,
	"HAS_INVENTORY":      http.StatusConflict,
	"HAS_PRODUCTS":       http.StatusConflict,
	"HAS_CHILDREN":       http.StatusConflict,

	// Business rule violations
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"EMPTY_ORDER":        http.StatusUnprocessableEntity,
	"INCOMPLETE_PACKING": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"CLIENT_SUSPENDED":   http.StatusUnprocessableEntity,
	"LIMIT_EXCEEDED":     http.StatusUnprocessableEntity,

	// Throttling and limits
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Optional subsystems
	"STORAGE_DISABLED": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
