package application

import (
	"context"
	"strings"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
)

// ServiceInput carries catalog fields. A nil CommunicationRate means 0 on
// create and leaves the stored rate unchanged on update.
type ServiceInput struct {
	Name              string
	Description       string
	Logo              string
	CommunicationRate *float64
}

// CatalogService manages the offerings listed under /api/services.
type CatalogService struct {
	Repo repo.ServiceRepository
}

func NewCatalogService(r repo.ServiceRepository) *CatalogService {
	return &CatalogService{Repo: r}
}

func (s *CatalogService) List(ctx context.Context) ([]entity.Service, error) {
	return s.Repo.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*entity.Service, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*entity.Service, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, ErrValidation
	}
	svc := &entity.Service{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Logo:        strings.TrimSpace(in.Logo),
	}
	if in.CommunicationRate != nil {
		svc.CommunicationRate = *in.CommunicationRate
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	countContent("service_created")
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ServiceInput) (*entity.Service, error) {
	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		svc.Name = v
	}
	if in.Description != "" {
		svc.Description = in.Description
	}
	if v := strings.TrimSpace(in.Logo); v != "" {
		svc.Logo = v
	}
	if in.CommunicationRate != nil {
		svc.CommunicationRate = *in.CommunicationRate
	}
	if err := s.Repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	countContent("service_updated")
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	countContent("service_deleted")
	return nil
}
