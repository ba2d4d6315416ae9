// Package mailer dispatches contact-form submissions by email.
//
// Two Sender implementations exist:
//
//   - Resend     → sends real email through the Resend API (production)
//   - ConsoleLog → logs the rendered submission instead (development, used
//     automatically when no API key is configured)
//
// Each submission produces two messages: an operator notification carrying
// every submitted field, and a best-effort confirmation back to the sender.
// The service layer decides what a send failure means for the request; this
// package only renders and dispatches.
package mailer

import (
	"context"

	"github.com/rusba/rusba-api/internal/model"
)

// Sender dispatches the two emails for one contact submission. ref is the
// submission's reference id — it appears in the notification subject and in
// logs so a received email can be matched to its request log lines.
type Sender interface {
	// SendNotification emails the submission to the site operator.
	// A failure here fails the whole contact request.
	SendNotification(ctx context.Context, ref string, msg model.ContactMessage) error

	// SendConfirmation emails a receipt back to the submitter.
	// Best-effort: callers log a failure and move on.
	SendConfirmation(ctx context.Context, msg model.ContactMessage) error
}
