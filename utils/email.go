package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

type SMTPSettings struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Mailer sends plain-text mails over SMTP with STARTTLS.
type Mailer struct {
	settings SMTPSettings
}

func NewMailer(s SMTPSettings) *Mailer {
	if s.FromEmail == "" {
		s.FromEmail = s.Username
	}
	return &Mailer{settings: s}
}

// Enabled reports whether host and credentials are present.
func (m *Mailer) Enabled() bool {
	return m.settings.Host != "" && m.settings.Username != "" && m.settings.Password != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		Log.Warn("SMTP not configured, email not sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	s := m.settings
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err := client.Auth(smtp.PlainAuth("", s.Username, s.Password, s.Host)); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(s.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(buildMessage(s.FromName, s.FromEmail, to, subject, body)); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		Log.Debug("QUIT command error", zap.Error(err))
	}

	Log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildMessage(fromName, fromEmail, to, subject, body string) []byte {
	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
