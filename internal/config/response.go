package config

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizzer/internal/apperror"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Log.WithError(err).Error("failed to encode response body")
	}
}

func Error(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, ErrorResponse{Error: message, Details: details})
}

// WriteError renders err with the status its apperror kind maps to.
// Errors outside the taxonomy are reported as internal server errors.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		Error(w, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return
	}
	Error(w, http.StatusInternalServerError, "internal server error", "")
}
