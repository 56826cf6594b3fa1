package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

var ErrContentNotFound = errors.New("content not found")

// NewsRepository persists news articles. List returns newest first.
type NewsRepository interface {
	Create(ctx context.Context, n *entity.News) error
	GetByID(ctx context.Context, id string) (*entity.News, error)
	List(ctx context.Context) ([]entity.News, error)
	Update(ctx context.Context, n *entity.News) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ServiceRepository persists catalog services. List returns newest first.
type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	List(ctx context.Context) ([]entity.Service, error)
	Update(ctx context.Context, s *entity.Service) error
	Delete(ctx context.Context, id string) error
}
