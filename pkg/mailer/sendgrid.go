package mailer

import (
	"context"
	"fmt"

	"cinelog/pkg/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridMailer struct {
	client sendGridClient
	from   *mail.Email
	log    *zap.Logger
}

func NewSendGridMailer(cfg utils.EmailConfig, log *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail("CineLog", cfg.From),
		log:    log.With(zap.String("mailer", "sendgrid")),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	to := mail.NewEmail("", msg.To)
	email := mail.NewSingleEmail(m.from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		m.log.Error("Failed to send email", zap.Error(err), zap.String("to", msg.To))
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	if resp.StatusCode >= 300 {
		m.log.Error("SendGrid rejected email",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
			zap.String("to", msg.To),
		)
		return fmt.Errorf("send email to %s: sendgrid status %d", msg.To, resp.StatusCode)
	}

	m.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
