package mocks

import (
	"context"
	"sync"

	"github.com/oksasatya/go-auth-portal/internal/application"
	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

// MockAccountIndexer implements application.AccountIndexer for testing
type MockAccountIndexer struct {
	IndexAccountFunc func(ctx context.Context, a *entity.Account) error

	mu      sync.Mutex
	indexed []string
}

func (m *MockAccountIndexer) IndexAccount(ctx context.Context, a *entity.Account) error {
	m.mu.Lock()
	m.indexed = append(m.indexed, a.ID)
	m.mu.Unlock()
	if m.IndexAccountFunc != nil {
		return m.IndexAccountFunc(ctx, a)
	}
	return nil
}

// Indexed returns the ids passed to IndexAccount, in call order.
func (m *MockAccountIndexer) Indexed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.indexed...)
}

var _ application.AccountIndexer = (*MockAccountIndexer)(nil)
