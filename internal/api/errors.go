package api

import (
	"encoding/json"
	"net/http"

	"lumina/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error          string             `json:"error"`
	Code           string             `json:"code"`
	Details        interface{}        `json:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	resp := ErrorResponse{
		Error: err.Error(),
	}

	// A LuminaError carries its own code and fixes
	if le, ok := err.(*errors.LuminaError); ok {
		resp.Error = le.Message
		resp.Code = string(le.Code)
		resp.Details = le.Details
		resp.SuggestedFixes = le.SuggestedFixes
	} else {
		resp.Code = string(errors.InternalError)
	}

	WriteJSON(w, resp, status)
}

// WriteLuminaError writes a LuminaError with automatic status code mapping
func WriteLuminaError(w http.ResponseWriter, err *errors.LuminaError) {
	WriteError(w, err, MapErrorToStatus(err.Code))
}

// MapErrorToStatus maps error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidRequest:
		return http.StatusUnprocessableEntity // 422
	case errors.PayloadTooLarge:
		return http.StatusRequestEntityTooLarge // 413
	case errors.MethodNotAllowed:
		return http.StatusMethodNotAllowed // 405
	case errors.Unauthorized:
		return http.StatusUnauthorized // 401
	case errors.NotFound:
		return http.StatusNotFound // 404
	case errors.JournalUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.Timeout:
		return http.StatusGatewayTimeout // 504
	case errors.ConfigInvalid, errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 422 error for a malformed or incomplete body
func BadRequest(w http.ResponseWriter, message string) {
	WriteLuminaError(w, errors.New(errors.InvalidRequest, message, nil))
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteLuminaError(w, errors.New(errors.NotFound, message, nil))
}

// MethodNotAllowed writes a 405 error and the Allow header
func MethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	WriteLuminaError(w, errors.New(errors.MethodNotAllowed, "Method not allowed", nil))
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string, err error) {
	WriteLuminaError(w, errors.New(errors.InternalError, message, err))
}
