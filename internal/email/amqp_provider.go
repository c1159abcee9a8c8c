package email

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKey - ключ, под которым публикуются задания на отправку
const RoutingKey = "mail.send"

// AMQPProvider публикует письма в exchange; отправкой занимается внешний воркер
type AMQPProvider struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	from     string
}

func NewAMQPProvider(url, exchange, from string) (*AMQPProvider, error) {
	if url == "" {
		return nil, fmt.Errorf("amqp url is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPProvider{conn: conn, ch: ch, exchange: exchange, from: from}, nil
}

func (p *AMQPProvider) Send(ctx context.Context, email *Email) error {
	if err := validate(email); err != nil {
		return err
	}
	msg := *email
	if msg.From == "" {
		msg.From = p.from
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// amqp.Channel не потокобезопасен для publish
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *AMQPProvider) Name() string { return ProviderAMQP }

func (p *AMQPProvider) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
