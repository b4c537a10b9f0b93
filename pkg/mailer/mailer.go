// Package mailer delivers sign-in codes by email.
package mailer

import (
	"context"
	"fmt"

	"cinelog/pkg/utils"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the delivery provider named by MAIL_PROVIDER.
func New(cfg utils.EmailConfig, log *zap.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "", "log":
		return NewLogMailer(log), nil
	case "smtp":
		if cfg.Host == "" {
			return nil, fmt.Errorf("smtp mailer: SMTP_HOST is required")
		}
		return NewSMTPMailer(cfg, log), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid mailer: SENDGRID_API_KEY is required")
		}
		return NewSendGridMailer(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// LoginCodeMessage renders the sign-in email.
func LoginCodeMessage(to, appName, code string, expiryMinutes int) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Your %s sign-in code", appName),
		Text: fmt.Sprintf("Your sign-in code is %s. It expires in %d minutes.\n\n"+
			"If you did not ask for it you can ignore this email.", code, expiryMinutes),
		HTML: fmt.Sprintf(`<p>Your sign-in code is</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:6px">%s</p>
<p>It expires in %d minutes. If you did not ask for it you can ignore this email.</p>`,
			code, expiryMinutes),
	}
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.With(zap.String("mailer", "log"))}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Email not sent (log provider)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}
