// Package handlers implements the local development REST handlers. They call
// the same application services as the AppSync resolver, mapping AppError
// kinds to HTTP status codes.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "kernelworx-backend/pkg/errors"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps an error to its HTTP shape. Collaborator failures are
// logged in full and surfaced as a bare 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.NewInternalError("internal error").WithCause(err)
	}

	status := appErr.HTTPStatus
	errType := appErr.Type
	message := appErr.Message
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("errorType", string(appErr.Type)), zap.Error(err))
		errType = apperrors.ErrorTypeInternal
		message = "internal error"
	}

	respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"type":    string(errType),
		"message": message,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("malformed request body")
	}
	return nil
}
