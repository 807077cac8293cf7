package reminders

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/tomlhennessy/job-tracker/internal/shared/telemetry"
)

// Mailer delivers a single plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

var _ Mailer = (*SendGridMailer)(nil)

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey), from: from}
}

func (m *SendGridMailer) Send(_ context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", m.from),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)
	resp, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer logs instead of sending; used when SendGrid is not
// configured.
type LogMailer struct{}

var _ Mailer = LogMailer{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	telemetry.Info("reminders.mail_logged", map[string]any{
		"to":      to,
		"subject": subject,
	})
	return nil
}
