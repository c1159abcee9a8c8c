package email

import (
	"context"
	"strings"

	"appointly/internal/logger"
)

// ConsoleProvider пишет письмо в лог вместо отправки. Используется локально.
type ConsoleProvider struct {
	from string
}

func NewConsoleProvider(from string) *ConsoleProvider {
	return &ConsoleProvider{from: from}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	if err := validate(email); err != nil {
		return err
	}
	from := email.From
	if from == "" {
		from = p.from
	}

	logger.CtxInfo(ctx, "email (console delivery)",
		"from", from,
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

func (p *ConsoleProvider) Name() string { return ProviderConsole }

func (p *ConsoleProvider) Close() error { return nil }
