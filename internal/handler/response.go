// Package handler contains the HTTP handlers: request parsing, response
// writing, and the mapping from domain errors to status codes. No business
// logic lives here — handlers delegate to the service layer and translate
// the result back to HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rusba/rusba-api/internal/apperror"
)

// ErrorResponse is the error body shape every endpoint returns. The single
// "message" field matches what the deployed frontend already parses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
//
// Order matters: headers must be set before WriteHeader, and WriteHeader
// before the body — once the body starts, header changes are silently lost.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP response.
//
// Typed errors from apperror carry a client-safe message and map to their
// status directly. Anything else is an unexpected backend failure: the detail
// is logged server-side and the client only sees the handler's generic
// fallback message — internal errors (SQL text, file paths, provider
// responses) must never reach the wire.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrRateLimited):
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, ErrorResponse{Message: appErr.Message})
		return
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: fallback})
}
