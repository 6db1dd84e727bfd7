package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"hrflow/internal/platform/config"
)

// Sender delivers one plain-text message. The noop sender stands in when
// email is disabled so callers never branch on configuration.
type Sender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type noopSender struct{}

func (noopSender) Send(ctx context.Context, from, to, subject, body string) error {
	return nil
}

type smtpSender struct {
	cfg config.Config
}

type Service struct {
	sender Sender
	from   string
}

func New(cfg config.Config) *Service {
	var sender Sender = noopSender{}
	if cfg.EmailEnabled && cfg.SMTPHost != "" {
		sender = &smtpSender{cfg: cfg}
	}
	return &Service{sender: sender, from: cfg.EmailFrom}
}

// SendOnboardingEmail delivers the welcome mail with the initial password
// issued at promotion.
func (s *Service) SendOnboardingEmail(ctx context.Context, address, name, initialPassword string) error {
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nYour employee account has been created.\r\n\r\nLogin: %s\r\nInitial password: %s\r\n\r\nPlease change the password after your first login.\r\n",
		name, address, initialPassword)
	return s.sender.Send(ctx, s.from, address, "Welcome aboard", body)
}

func (s *smtpSender) Send(ctx context.Context, from, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	msg := buildMessage(from, to, subject, body)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.SMTPUseTLS {
		tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + body)
}
