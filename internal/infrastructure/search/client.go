package search

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ClientConfig holds connection settings; no addresses disables search.
type ClientConfig struct {
	Addresses []string
	Username  string
	Password  string
}

// NewClient returns nil, nil when cfg has no addresses.
func NewClient(cfg ClientConfig) (*elasticsearch.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, nil
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

const accountsMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "keyword"},
      "email":         {"type": "keyword"},
      "name":          {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "is_verified":   {"type": "boolean"},
      "last_login_at": {"type": "date"},
      "created_at":    {"type": "date"},
      "updated_at":    {"type": "date"}
    }
  }
}`

// EnsureIndex creates the accounts index with its mapping if it does not exist.
func (x *AccountIndexer) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es index exists: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es index exists: %s", res.Status())
	}

	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(accountsMapping)}.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	// a concurrent creator wins with resource_already_exists_exception
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}
