package mailer

import (
	"context"
	"log/slog"

	"github.com/rusba/rusba-api/internal/model"
)

var _ Sender = (*ConsoleLog)(nil)

// ConsoleLog is the development fallback used when no Resend API key is
// configured: instead of emailing, it logs the submission fields so local
// contact-form testing works without any provider account. Requests still
// report success.
type ConsoleLog struct {
	logger *slog.Logger
}

// NewConsoleLog creates the console fallback sender.
func NewConsoleLog(logger *slog.Logger) *ConsoleLog {
	return &ConsoleLog{logger: logger}
}

// SendNotification logs the full submission in place of the operator email.
func (c *ConsoleLog) SendNotification(_ context.Context, ref string, msg model.ContactMessage) error {
	phone := msg.Phone
	if phone == "" {
		phone = "Not provided"
	}
	c.logger.Info("contact form submission (dev mode, email not configured)",
		slog.String("ref", ref),
		slog.String("name", msg.Name),
		slog.String("email", msg.Email),
		slog.String("phone", phone),
		slog.String("subject", msg.Subject),
		slog.String("message", msg.Message),
	)
	return nil
}

// SendConfirmation logs in place of the confirmation email.
func (c *ConsoleLog) SendConfirmation(_ context.Context, msg model.ContactMessage) error {
	c.logger.Info("contact confirmation skipped (dev mode, email not configured)",
		slog.String("to", msg.Email),
		slog.String("subject", msg.Subject),
	)
	return nil
}
