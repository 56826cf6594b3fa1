// Package memory provides mutex-guarded in-process repositories.
// They back STORE_DRIVER=memory for local runs and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	"github.com/oksasatya/go-auth-portal/internal/domain/repository"
)

type AccountRepository struct {
	mu      sync.Mutex
	byID    map[string]*entity.Account
	byEmail map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]*entity.Account),
		byEmail: make(map[string]string),
	}
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[a.Email]; taken {
		return repository.ErrDuplicateAccount
	}
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now
	r.byID[a.ID] = cloneAccount(a)
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *AccountRepository) ConsumeVerificationCode(_ context.Context, code string, now time.Time) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.sortedByCreation() {
		if a.Verification.Matches(code, now) {
			a.IsVerified = true
			a.Verification = nil
			a.UpdatedAt = now
			return cloneAccount(a), nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *AccountRepository) SetResetToken(_ context.Context, id string, token entity.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.Reset = &token
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *AccountRepository) ConsumeResetToken(_ context.Context, token, passwordHash string, now time.Time) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.sortedByCreation() {
		if a.Reset.Matches(token, now) {
			a.PasswordHash = passwordHash
			a.Reset = nil
			a.UpdatedAt = now
			return cloneAccount(a), nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *AccountRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.LastLoginAt = &at
	a.UpdatedAt = at
	return nil
}

// sortedByCreation gives code lookups a stable order. Callers hold mu.
func (r *AccountRepository) sortedByCreation() []*entity.Account {
	out := make([]*entity.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func cloneAccount(a *entity.Account) *entity.Account {
	c := *a
	if a.Verification != nil {
		v := *a.Verification
		c.Verification = &v
	}
	if a.Reset != nil {
		v := *a.Reset
		c.Reset = &v
	}
	if a.LastLoginAt != nil {
		t := *a.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
