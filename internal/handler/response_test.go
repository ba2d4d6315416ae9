package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rusba/rusba-api/internal/apperror"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperror.ValidationFailed("", "Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{"unauthorized", apperror.InvalidCredentials(), http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", apperror.Forbidden("Invalid or expired token"), http.StatusForbidden, "Invalid or expired token"},
		{"not found", apperror.NotFound("Service"), http.StatusNotFound, "Service not found"},
		{"rate limited", apperror.RateLimited("Too many requests."), http.StatusTooManyRequests, "Too many requests."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, discardLogger(), tt.err, "fallback")

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMsg)
			}
		})
	}
}

func TestWriteError_WrappedErrorStillMaps(t *testing.T) {
	// Services wrap repository errors with context; the mapping must see
	// through the wrapping via errors.As/Is.
	wrapped := fmt.Errorf("loading service 7: %w", apperror.NotFound("Service"))

	rec := httptest.NewRecorder()
	writeError(rec, discardLogger(), wrapped, "fallback")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a wrapped not-found", rec.Code)
	}
}

func TestWriteError_UnknownErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, discardLogger(), errors.New("pq: connection refused at 10.0.0.5"), "Error fetching services")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	// The client gets the generic fallback, never the internal detail.
	if body.Message != "Error fetching services" {
		t.Errorf("message = %q, want the fallback", body.Message)
	}
}

func TestWriteJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}
