package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rs/xid"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/mailer"
	"github.com/rusba/rusba-api/internal/model"
)

// emailPattern is a syntactic check only: something@something.something with
// no whitespace. Real deliverability is the provider's problem; this just
// catches obvious typos before we spend an API call on them.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService validates contact-form submissions and relays them through
// the configured mailer.Sender (Resend in production, console logging in
// development).
type ContactService struct {
	sender mailer.Sender
	logger *slog.Logger
}

// NewContactService creates a ContactService using the given sender.
func NewContactService(sender mailer.Sender, logger *slog.Logger) *ContactService {
	return &ContactService{sender: sender, logger: logger}
}

// Submit validates a submission and dispatches the two emails.
//
// Validation failures return apperror.ErrValidation BEFORE any provider call
// is made. The operator notification must succeed for the request to succeed;
// the sender confirmation is best-effort — a failure there is logged and the
// submitter still gets a success response, because their message DID reach us.
func (s *ContactService) Submit(ctx context.Context, msg model.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return apperror.ValidationFailed("", "Please fill in all required fields.")
	}
	if !emailPattern.MatchString(msg.Email) {
		return apperror.ValidationFailed("email", "Please provide a valid email address.")
	}

	// Reference id: ties the received email back to these log lines.
	ref := xid.New().String()

	if err := s.sender.SendNotification(ctx, ref, msg); err != nil {
		return fmt.Errorf("relaying contact message %s: %w", ref, err)
	}

	if err := s.sender.SendConfirmation(ctx, msg); err != nil {
		s.logger.Warn("could not send confirmation email",
			slog.String("ref", ref),
			slog.String("to", msg.Email),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("contact message relayed",
		slog.String("ref", ref),
		slog.String("from", msg.Email),
		slog.String("subject", msg.Subject),
	)
	return nil
}
