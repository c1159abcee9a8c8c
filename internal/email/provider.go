package email

import (
	"context"
	"errors"
	"fmt"
)

// Provider доставляет письма. Реализации: console, smtp, amqp, mock.
type Provider interface {
	Send(ctx context.Context, email *Email) error
	// Name - идентификатор провайдера из конфигурации
	Name() string
	Close() error
}

// Config - параметры выбора и настройки провайдера
type Config struct {
	Provider     string
	FromEmail    string
	FromName     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	AMQPURL      string
	AMQPExchange string
}

const (
	ProviderConsole = "console"
	ProviderSMTP    = "smtp"
	ProviderAMQP    = "amqp"
	ProviderMock    = "mock"
)

// NewProvider создает провайдер по имени из конфигурации
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderConsole, "":
		return NewConsoleProvider(cfg.FromEmail), nil
	case ProviderSMTP:
		return NewSMTPProvider(cfg)
	case ProviderAMQP:
		return NewAMQPProvider(cfg.AMQPURL, cfg.AMQPExchange, cfg.FromEmail)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func validate(email *Email) error {
	if email == nil {
		return errors.New("email is nil")
	}
	if len(email.To) == 0 {
		return errors.New("email has no recipients")
	}
	if email.Body == "" && email.HTMLBody == "" {
		return errors.New("email has no body")
	}
	return nil
}
