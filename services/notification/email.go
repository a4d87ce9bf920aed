package notification

import (
	"fmt"
	"net/smtp"

	"remindly/config"
)

// EmailClient sends reminder mail over plain SMTP.
type EmailClient struct {
	Host   string
	Port   int
	Auth   smtp.Auth
	Sender string
}

// NewEmailClient builds a client from the loaded configuration.
func NewEmailClient() *EmailClient {
	cfg := config.AppConfig
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &EmailClient{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		Auth:   auth,
		Sender: cfg.SMTPSender,
	}
}

// Send delivers a plain-text email.
func (c *EmailClient) Send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s\r\n", to, c.Sender, subject, body))
	addr := fmt.Sprintf("%s:%d", c.Host, c.Port)
	if err := smtp.SendMail(addr, c.Auth, c.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", c.Host, err)
	}
	return nil
}
