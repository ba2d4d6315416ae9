package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rusba/rusba-api/internal/model"
)

// Lagos is the timezone the operator reads the notification in; the submitted
// timestamp is rendered there rather than in server time.
func lagosTime(t time.Time) string {
	loc, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("January 2, 2006 at 3:04 PM")
}

// htmlBody escapes a free-text field and converts newlines to <br> so the
// submitted message keeps its paragraphs in the rendered email.
func htmlBody(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// The two bodies are kept visually identical to what the site has always
// sent: inline styles only (email clients ignore stylesheets), brand colour
// #66b2ff, white card on a grey page.

var notificationTmpl = template.Must(template.New("notification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
  <div style="background-color: #ffffff; padding: 30px; border-radius: 10px;">
    <div style="text-align: center; margin-bottom: 30px;">
      <h1 style="color: #66b2ff; margin: 0; font-size: 24px;">New Contact Form Submission</h1>
      <div style="width: 60px; height: 3px; background-color: #66b2ff; margin: 10px auto;"></div>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
      <h2 style="color: #333; margin: 0 0 15px 0; font-size: 18px;">Contact Details</h2>
      <table style="width: 100%; border-collapse: collapse;">
        <tr>
          <td style="padding: 8px 0; color: #666; font-weight: bold; width: 100px;">Name:</td>
          <td style="padding: 8px 0; color: #333;">{{.Name}}</td>
        </tr>
        <tr>
          <td style="padding: 8px 0; color: #666; font-weight: bold;">Email:</td>
          <td style="padding: 8px 0; color: #333;">{{.Email}}</td>
        </tr>
        {{if .Phone}}
        <tr>
          <td style="padding: 8px 0; color: #666; font-weight: bold;">Phone:</td>
          <td style="padding: 8px 0; color: #333;">{{.Phone}}</td>
        </tr>
        {{end}}
        <tr>
          <td style="padding: 8px 0; color: #666; font-weight: bold;">Subject:</td>
          <td style="padding: 8px 0; color: #333;">{{.Subject}}</td>
        </tr>
      </table>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px;">
      <h2 style="color: #333; margin: 0 0 15px 0; font-size: 18px;">Message</h2>
      <div style="background-color: #ffffff; padding: 15px; border-radius: 5px; border-left: 4px solid #66b2ff; line-height: 1.6; color: #333;">
        {{.Message}}
      </div>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px;">
      <p>This email was sent from the Rusba Digital Solutions contact form.</p>
      <p>Submitted on: {{.SubmittedAt}}</p>
    </div>
  </div>
</div>
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
  <div style="background-color: #ffffff; padding: 30px; border-radius: 10px;">
    <div style="text-align: center; margin-bottom: 30px;">
      <h1 style="color: #66b2ff; margin: 0; font-size: 24px;">Thank You for Contacting Us!</h1>
      <div style="width: 60px; height: 3px; background-color: #66b2ff; margin: 10px auto;"></div>
    </div>
    <div style="color: #333; line-height: 1.6;">
      <p>Dear {{.Name}},</p>
      <p>Thank you for reaching out to Rusba Digital Solutions. We have received your message and will get back to you within 24 hours.</p>
      <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #333; margin: 0 0 10px 0;">Your Message Summary:</h3>
        <p style="margin: 0; color: #666;"><strong>Subject:</strong> {{.Subject}}</p>
        <p style="margin: 10px 0 0 0; color: #666;"><strong>Message:</strong> {{.Message}}</p>
      </div>
      <p>If you have any urgent inquiries, please feel free to call us directly.</p>
      <p>Best regards,<br>The Rusba Digital Solutions Team</p>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px;">
      <p>Rusba Digital Solutions Limited</p>
      <p>Port Harcourt, Rivers State, Nigeria</p>
      <p>Email: contact@rusbadsl.com.ng</p>
    </div>
  </div>
</div>
`))

type emailData struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     template.HTML
	SubmittedAt string
}

func renderNotification(msg model.ContactMessage, submittedAt time.Time) (string, error) {
	var b strings.Builder
	err := notificationTmpl.Execute(&b, emailData{
		Name:        msg.Name,
		Email:       msg.Email,
		Phone:       msg.Phone,
		Subject:     msg.Subject,
		Message:     htmlBody(msg.Message),
		SubmittedAt: lagosTime(submittedAt),
	})
	if err != nil {
		return "", fmt.Errorf("mailer: rendering notification: %w", err)
	}
	return b.String(), nil
}

func renderConfirmation(msg model.ContactMessage) (string, error) {
	var b strings.Builder
	err := confirmationTmpl.Execute(&b, emailData{
		Name:    msg.Name,
		Subject: msg.Subject,
		Message: htmlBody(msg.Message),
	})
	if err != nil {
		return "", fmt.Errorf("mailer: rendering confirmation: %w", err)
	}
	return b.String(), nil
}
