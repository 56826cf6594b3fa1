package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
)

const newsFolder = "news"

type NewsInput struct {
	Title       string
	Description string
	Author      string
	Category    string
}

type NewsService struct {
	Repo    repo.NewsRepository
	Uploads UploadSink
	Logger  *logrus.Logger
}

func NewNewsService(r repo.NewsRepository, uploads UploadSink, logger *logrus.Logger) *NewsService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &NewsService{Repo: r, Uploads: uploads, Logger: logger}
}

func (s *NewsService) List(ctx context.Context) ([]entity.News, error) {
	return s.Repo.List(ctx)
}

func (s *NewsService) Get(ctx context.Context, id string) (*entity.News, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *NewsService) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

// Create stores a news item. img may be nil.
func (s *NewsService) Create(ctx context.Context, in NewsInput, img *Image) (*entity.News, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, ErrValidation
	}
	n := &entity.News{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Author:      strings.TrimSpace(in.Author),
		Category:    strings.TrimSpace(in.Category),
	}
	if img != nil {
		url, err := s.upload(ctx, img)
		if err != nil {
			return nil, err
		}
		n.Image = url
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		s.discard(ctx, n.Image)
		return nil, err
	}
	countContent("news_created")
	return n, nil
}

// Update overwrites the non-empty fields of in and replaces the image if img is set.
func (s *NewsService) Update(ctx context.Context, id string, in NewsInput, img *Image) (*entity.News, error) {
	n, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Title); v != "" {
		n.Title = v
	}
	if in.Description != "" {
		n.Description = in.Description
	}
	if v := strings.TrimSpace(in.Author); v != "" {
		n.Author = v
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		n.Category = v
	}
	uploaded := ""
	if img != nil {
		url, err := s.upload(ctx, img)
		if err != nil {
			return nil, err
		}
		uploaded = url
		n.Image = url
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}
	countContent("news_updated")
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	countContent("news_deleted")
	return nil
}

func (s *NewsService) upload(ctx context.Context, img *Image) (string, error) {
	url, err := s.Uploads.Save(ctx, newsFolder, img.Ext, img.ContentType, img.Body)
	if err != nil {
		helpers.LogError(s.Logger, "news image upload failed", err, nil)
		return "", fmt.Errorf("upload news image: %w", err)
	}
	return url, nil
}

// discard removes an upload whose row was never stored.
func (s *NewsService) discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.Uploads.Delete(ctx, url); err != nil {
		s.Logger.WithError(err).WithField("image", url).Warn("orphaned news image left behind")
	}
}
