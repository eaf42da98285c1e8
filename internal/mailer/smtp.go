package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"petcareapi/internal/config"
)

// SMTPMailer sends mail through a plain SMTP relay with optional AUTH.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTP builds a mailer from config. Auth is skipped when no username is set
// (local relays, mailhog).
func NewSMTP(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp sender address is required")
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		auth:     auth,
		from:     cfg.From,
		sendMail: smtp.SendMail,
	}, nil
}

// Send delivers one plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient address is required")
	}
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")
	if err := m.sendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
