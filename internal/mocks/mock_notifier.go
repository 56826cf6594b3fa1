package mocks

import (
	"context"
	"sync"

	"github.com/oksasatya/go-auth-portal/internal/application"
)

// SentEmail is one recorded Notifier.Send call.
type SentEmail struct {
	Kind    string
	To      string
	Payload map[string]any
}

// MockNotifier implements application.Notifier and records every call.
type MockNotifier struct {
	SendFunc func(ctx context.Context, kind, to string, payload map[string]any) error

	mu   sync.Mutex
	sent []SentEmail
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(ctx context.Context, kind, to string, payload map[string]any) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentEmail{Kind: kind, To: to, Payload: payload})
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, kind, to, payload)
	}
	// Default behavior: success
	return nil
}

// Sent returns a copy of the recorded calls.
func (m *MockNotifier) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.sent...)
}

// Last returns the most recent call of the given kind.
func (m *MockNotifier) Last(kind string) (SentEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Kind == kind {
			return m.sent[i], true
		}
	}
	return SentEmail{}, false
}

var _ application.Notifier = (*MockNotifier)(nil)
