// ABOUTME: Standardized error response types and helpers for HTTP handlers.
// ABOUTME: Provides consistent error formatting across the API and console.

package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the standardized error response structure used by every
// handler in this server. Clients can rely on this shape for all non-2xx
// responses.
type ErrorResponse struct {
	Code    string `json:"code"`              // Machine-readable error code (e.g., "not_found")
	Message string `json:"message"`           // Human-readable error message
	Status  int    `json:"status"`            // HTTP status code
	Field   string `json:"field,omitempty"`   // Optional: field that caused a validation error
	Details string `json:"details,omitempty"` // Optional: additional error context
}

// WriteError writes a standardized error response.
//
//	WriteError(w, http.StatusNotFound, ErrNotFound, "role 7 does not exist")
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
	})
}

// WriteErrorWithField writes an error response naming the offending field.
// Used for validation errors so the console can flag the right input.
func WriteErrorWithField(w http.ResponseWriter, status int, code, message, field string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Field:   field,
	})
}

// WriteErrorWithDetails writes an error response with extra context.
func WriteErrorWithDetails(w http.ResponseWriter, status int, code, message, details string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Details: details,
	})
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}

// Standard error codes shared by the API and the console.
const (
	// Client errors (4xx)
	ErrInvalidRequest   = "invalid_request"
	ErrInvalidBody      = "invalid_request_body"
	ErrMissingField     = "missing_field"
	ErrValidationFailed = "validation_failed"
	ErrNotFound         = "not_found"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrConflict         = "conflict"

	// Server errors (5xx)
	ErrInternal      = "internal_error"
	ErrDatabaseError = "database_error"
)
