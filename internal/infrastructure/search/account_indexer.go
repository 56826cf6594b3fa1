// Package search mirrors redacted accounts into Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

type AccountIndexer struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewAccountIndexer(es *elasticsearch.Client, index string) *AccountIndexer {
	return &AccountIndexer{es: es, index: index, timeout: 3 * time.Second}
}

// accountDoc holds only fields safe to expose to operators searching the index.
type accountDoc struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsVerified  bool       `json:"is_verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (x *AccountIndexer) IndexAccount(ctx context.Context, a *entity.Account) error {
	b, err := json.Marshal(accountDoc{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		IsVerified:  a.IsVerified,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	})
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	req := esapi.IndexRequest{Index: x.index, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}
