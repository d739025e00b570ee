package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondAppError maps an application error to an HTTP response using its
// error code. Internal errors do not leak their cause to the client.
func respondAppError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeValidation, apperrors.CodeSchema, apperrors.CodeParse:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	}
	respondJSON(w, ErrorResponse{Error: apperrors.MessageOf(err), Code: code}, status)
}
