package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"cinelog/pkg/utils"

	"go.uber.org/zap"
)

type SMTPMailer struct {
	addr     string
	host     string
	user     string
	password string
	from     string
	log      *zap.Logger

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		log:      log.With(zap.String("mailer", "smtp")),
		send:     smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := m.send(m.addr, auth, m.from, []string{msg.To}, buildMIME(m.from, msg)); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", msg.To),
		)
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	m.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMIME(from string, msg Message) []byte {
	body := msg.HTML
	contentType := "text/html"
	if body == "" {
		body = msg.Text
		contentType = "text/plain"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"UTF-8\"\r\n\r\n", contentType)
	b.WriteString(body)
	return []byte(b.String())
}
