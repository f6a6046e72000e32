package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPMailer delivers plain-text e-mail over SMTP. Each message gets its own
// client and connection, so SendEmail is safe for concurrent use.
type SMTPMailer struct {
	host    string
	options []mail.Option
	from    string
}

// NewSMTPMailer creates a mailer; without a username it only logs messages
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	if username == "" {
		return &SMTPMailer{from: from}, nil
	}

	options := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(15 * time.Second),
	}
	// Reject bad settings at startup rather than on the first send
	if _, err := mail.NewClient(host, options...); err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPMailer{host: host, options: options, from: from}, nil
}

// SendEmail sends a plain-text message
func (m *SMTPMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.options == nil {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host, m.options...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
