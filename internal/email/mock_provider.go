package email

import (
	"context"
	"sync"
)

// MockProvider запоминает письма в памяти. Для тестов.
type MockProvider struct {
	mu   sync.Mutex
	sent []Email
	// Err, если задан, возвращается из Send
	Err error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(_ context.Context, email *Email) error {
	if m.Err != nil {
		return m.Err
	}
	if err := validate(email); err != nil {
		return err
	}
	m.mu.Lock()
	m.sent = append(m.sent, *email)
	m.mu.Unlock()
	return nil
}

// Sent возвращает копию отправленных писем
func (m *MockProvider) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// Last возвращает последнее письмо или nil
func (m *MockProvider) Last() *Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	e := m.sent[len(m.sent)-1]
	return &e
}

func (m *MockProvider) Name() string { return ProviderMock }

func (m *MockProvider) Close() error { return nil }
