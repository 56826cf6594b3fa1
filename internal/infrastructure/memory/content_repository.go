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

type NewsRepository struct {
	mu   sync.RWMutex
	rows map[string]entity.News
}

func NewNewsRepository() *NewsRepository {
	return &NewsRepository{rows: make(map[string]entity.News)}
}

func (r *NewsRepository) Create(_ context.Context, n *entity.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	n.ID = uuid.NewString()
	n.Date, n.CreatedAt, n.UpdatedAt = now, now, now
	r.rows[n.ID] = *n
	return nil
}

func (r *NewsRepository) GetByID(_ context.Context, id string) (*entity.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrContentNotFound
	}
	return &n, nil
}

func (r *NewsRepository) List(_ context.Context) ([]entity.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.News, 0, len(r.rows))
	for _, n := range r.rows {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NewsRepository) Update(_ context.Context, n *entity.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[n.ID]
	if !ok {
		return repository.ErrContentNotFound
	}
	n.Date, n.CreatedAt = cur.Date, cur.CreatedAt
	n.UpdatedAt = time.Now().UTC()
	r.rows[n.ID] = *n
	return nil
}

func (r *NewsRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrContentNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *NewsRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

type ServiceRepository struct {
	mu   sync.RWMutex
	rows map[string]entity.Service
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{rows: make(map[string]entity.Service)}
}

func (r *ServiceRepository) Create(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	s.ID = uuid.NewString()
	if s.Logo == "" {
		s.Logo = "default-logo.png"
	}
	s.Date, s.CreatedAt, s.UpdatedAt = now, now, now
	r.rows[s.ID] = *s
	return nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id string) (*entity.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrContentNotFound
	}
	return &s, nil
}

func (r *ServiceRepository) List(_ context.Context) ([]entity.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Service, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ServiceRepository) Update(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[s.ID]
	if !ok {
		return repository.ErrContentNotFound
	}
	s.Date, s.CreatedAt = cur.Date, cur.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	r.rows[s.ID] = *s
	return nil
}

func (r *ServiceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrContentNotFound
	}
	delete(r.rows, id)
	return nil
}

var (
	_ repository.NewsRepository    = (*NewsRepository)(nil)
	_ repository.ServiceRepository = (*ServiceRepository)(nil)
)
