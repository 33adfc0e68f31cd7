// Package email delivers messages through a configured SMTP server. When
// credentials are absent the mailer reports ErrNotConfigured instead of
// failing the session; the dispatcher turns that into a spoken diagnostic.
package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"aria/internal/config"
)

// ErrNotConfigured is returned when SMTP credentials are missing from the
// settings file.
var ErrNotConfigured = errors.New("smtp credentials not configured")

// Mailer sends an email on behalf of the user
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMTPMailer sends mail over plain SMTP with a bounded dial timeout.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	timeout  time.Duration
}

// NewSMTPMailer builds a mailer from the settings document
func NewSMTPMailer(settings *config.Settings) *SMTPMailer {
	from := settings.SMTPFrom
	if from == "" {
		from = settings.SMTPUsername
	}
	return &SMTPMailer{
		host:     settings.SMTPHost,
		port:     settings.SMTPPort,
		username: settings.SMTPUsername,
		password: settings.SMTPPassword,
		from:     from,
		timeout:  15 * time.Second,
	}
}

// Send delivers one message. Returns ErrNotConfigured when the settings file
// carries no usable SMTP host or credentials.
func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	if m.host == "" || m.username == "" || m.password == "" {
		return ErrNotConfigured
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to reach SMTP server %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + recipient,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("QUIT failed: %w", err)
	}

	log.Printf("📧 [EMAIL] Sent %q to %s", subject, recipient)
	return nil
}
