package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
)

// ApiResponse wraps data in the format expected by API clients.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// RespondServiceError maps a service-layer error onto the HTTP surface.
// Known error kinds carry their message to the caller; anything else is an
// internal error whose detail is logged server-side only.
func RespondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var statusCode int
	var errorCode string

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		statusCode, errorCode = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode, errorCode = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrForbidden):
		statusCode, errorCode = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperrors.ErrRateLimited):
		statusCode, errorCode = http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		statusCode, errorCode = http.StatusConflict, "invalid_transition"
	default:
		logger.Error("Internal error handling request", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "An internal error occurred"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := ErrorResponse(w, statusCode, errorCode, err.Error()); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}
