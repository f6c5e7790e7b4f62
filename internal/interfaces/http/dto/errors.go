package dto

import "net/http"

// Error codes returned by the API
const (
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeRemoteUnavailable = "REMOTE_UNAVAILABLE"
	ErrCodeMergeFailed       = "MERGE_FAILED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// statusByCode maps API error codes to HTTP status codes
var statusByCode = map[string]int{
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeValidation:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeNotFound:          http.StatusNotFound,
	"INVALID_STATE":          http.StatusConflict,
	ErrCodeRemoteUnavailable: http.StatusBadGateway,
	ErrCodeMergeFailed:       http.StatusBadGateway,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ValidationDetail describes a single failed request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
