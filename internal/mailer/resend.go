package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/rusba/rusba-api/internal/model"
)

var _ Sender = (*Resend)(nil)

// Resend sends contact emails through the Resend API.
//
// The from address must belong to the domain verified in the Resend
// dashboard, or the API rejects the send. ReplyTo is set to the submitter on
// the notification so the operator can answer directly from their inbox.
type Resend struct {
	client *resend.Client
	from   string // verified sender, e.g. "Contact Form <noreply@rusbadsl.com.ng>"
	to     string // operator inbox
	logger *slog.Logger
}

// NewResend creates a Resend-backed sender.
func NewResend(apiKey, from, to string, logger *slog.Logger) *Resend {
	return &Resend{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
		logger: logger,
	}
}

// SendNotification emails the submission to the operator inbox.
func (r *Resend) SendNotification(ctx context.Context, ref string, msg model.ContactMessage) error {
	html, err := renderNotification(msg, time.Now())
	if err != nil {
		return err
	}

	sent, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{r.to},
		Subject: fmt.Sprintf("New Contact Form: %s [%s]", msg.Subject, ref),
		Html:    html,
		ReplyTo: msg.Email,
	})
	if err != nil {
		return fmt.Errorf("mailer: sending notification: %w", err)
	}

	r.logger.Info("contact notification sent",
		slog.String("ref", ref),
		slog.String("emailID", sent.Id),
	)
	return nil
}

// SendConfirmation emails a receipt to the submitter.
func (r *Resend) SendConfirmation(ctx context.Context, msg model.ContactMessage) error {
	html, err := renderConfirmation(msg)
	if err != nil {
		return err
	}

	_, err = r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{msg.Email},
		Subject: "Thank you for contacting Rusba Digital Solutions",
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("mailer: sending confirmation: %w", err)
	}
	return nil
}
