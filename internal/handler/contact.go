package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/model"
	"github.com/rusba/rusba-api/internal/service"
)

// ContactHandler serves the public contact-form endpoint.
type ContactHandler struct {
	contact *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contact *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, logger: logger}
}

// contactResponse is this endpoint's response shape. It predates the rest of
// the API's plain {"message"} errors — the contact page reads the success
// flag, so the legacy shape is kept.
type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleSubmit processes POST /contact.
//
// 200 with a thank-you message when the notification email was dispatched
// (or dev-logged), 400 with the validation message for missing/malformed
// fields, 500 with a generic apology when the provider fails. The general
// API rate limiter runs before this handler.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Success: false,
			Message: "Please fill in all required fields.",
		})
		return
	}

	if err := h.contact.Submit(r.Context(), msg); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, contactResponse{
				Success: false,
				Message: appErr.Message,
			})
			return
		}

		h.logger.Error("contact relay failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, contactResponse{
			Success: false,
			Message: "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{
		Success: true,
		Message: "Thank you for your message! We will get back to you soon.",
	})
}
