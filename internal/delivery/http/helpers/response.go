package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
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

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// WriteServiceError maps domain sentinel errors to a status and error code.
// Anything unrecognised is logged and reported as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedFileType):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateUsername):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
