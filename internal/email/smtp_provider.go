package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через SMTP (gomail)
type SMTPProvider struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPProvider(cfg Config) (*SMTPProvider, error) {
	if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
		return nil, errors.New("smtp host and port are required")
	}
	if cfg.FromEmail == "" {
		return nil, errors.New("smtp from address is required")
	}
	return &SMTPProvider{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}, nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()
	if email.From != "" {
		m.SetHeader("From", email.From)
	} else {
		m.SetAddressHeader("From", p.from, p.fromName)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.Body != "" && email.HTMLBody != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}
	return m
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := validate(email); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.dialer.DialAndSend(p.buildMessage(email)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (p *SMTPProvider) Name() string { return ProviderSMTP }

func (p *SMTPProvider) Close() error { return nil }
