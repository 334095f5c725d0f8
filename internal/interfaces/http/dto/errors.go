package dto

import "net/http"

// Common error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeInvalidState = "INVALID_STATE"
)

// statusByCode maps application error codes to HTTP status codes
var statusByCode = map[string]int{
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeInvalidState:      http.StatusConflict,
	ErrCodeInternal:          http.StatusInternalServerError,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_RATE":           http.StatusBadRequest,
	"INVALID_COST":           http.StatusBadRequest,
	"INVALID_PURCHASE_ORDER": http.StatusBadRequest,
	"INVALID_OPERATOR":       http.StatusBadRequest,
	"SUPPLIER_NOT_FOUND":     http.StatusBadRequest,
}

// GetHTTPStatus derives the HTTP status code from an application error code
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
