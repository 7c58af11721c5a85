package handler

import (
	"encoding/json"
	"net/http"

	apperrors "portfolio-api/pkg/errors"
	"portfolio-api/pkg/logger"
)

// writeJSON writes body with the given status
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError writes {"error": message} with the AppError's status. Internal
// detail is logged, never returned.
func writeError(w http.ResponseWriter, appErr *apperrors.AppError, log *logger.Logger) {
	entry := log.WithFields(map[string]interface{}{
		"status": appErr.StatusCode,
		"type":   appErr.Type,
	})
	if appErr.Internal != nil {
		entry = entry.WithError(appErr.Internal)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		entry.Error(appErr.Message)
	} else {
		entry.Debug(appErr.Message)
	}

	writeJSON(w, appErr.StatusCode, apperrors.ErrorResponse{Error: appErr.Message}, log)
}

// NotFound handles unknown routes
func NotFound(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperrors.NewNotFoundError("Endpoint not found"), log)
	}
}

// MethodNotAllowed handles known routes called with the wrong method
func MethodNotAllowed(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, &apperrors.AppError{
			Type:       apperrors.ErrorTypeValidation,
			Message:    "Method not allowed",
			StatusCode: http.StatusMethodNotAllowed,
		}, log)
	}
}
