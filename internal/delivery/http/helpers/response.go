package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventstaffing/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInvalidState  = "invalid_state"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode,
// and encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode,
// and encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// DomainErrorStatus maps a domain sentinel error to an HTTP status and API
// error code. Unrecognized errors are treated as internal store failures.
func DomainErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrOutsideEventWindow):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrPositionFull),
		errors.Is(err, domain.ErrDuplicateDay),
		errors.Is(err, domain.ErrAlreadyManager),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrEventEnded):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrEmploymentNotAccepted):
		return http.StatusUnprocessableEntity, ErrCodeInvalidState
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteDomainError writes the APIResponse for a service error using
// DomainErrorStatus. Returns true when the error was a recognized domain
// condition, false when it was surfaced as an internal error (callers
// typically log those).
func WriteDomainError(w http.ResponseWriter, err error) bool {
	status, code := DomainErrorStatus(err)
	WriteJSONError(w, status, code, err.Error())
	return status != http.StatusInternalServerError
}
