package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

type capture struct {
	mu     sync.Mutex
	path   string
	body   string
	status int
}

func fakeES(t *testing.T, status int) (*elasticsearch.Client, *capture) {
	t.Helper()
	cp := &capture{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		cp.mu.Lock()
		cp.path, cp.body = r.URL.Path, string(b)
		cp.mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(cp.status)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, cp
}

func TestIndexAccount_SendsRedactedDocument(t *testing.T) {
	es, cp := fakeES(t, http.StatusCreated)
	x := NewAccountIndexer(es, "accounts")

	a := &entity.Account{
		ID:           "acc-1",
		Email:        "a@x.com",
		Name:         "Ann",
		PasswordHash: "$2a$10$secret",
		Verification: &entity.OneTimeCode{Value: "123456", ExpiresAt: time.Now().Add(time.Hour)},
		Reset:        &entity.OneTimeCode{Value: "deadbeef", ExpiresAt: time.Now().Add(time.Hour)},
	}
	require.NoError(t, x.IndexAccount(context.Background(), a))

	cp.mu.Lock()
	defer cp.mu.Unlock()
	assert.Equal(t, "/accounts/_doc/acc-1", cp.path)
	assert.Contains(t, cp.body, `"email":"a@x.com"`)
	assert.NotContains(t, cp.body, "secret")
	assert.NotContains(t, cp.body, "123456")
	assert.NotContains(t, cp.body, "deadbeef")
}

func TestIndexAccount_ErrorStatus(t *testing.T) {
	es, _ := fakeES(t, http.StatusBadRequest)
	x := NewAccountIndexer(es, "accounts")

	err := x.IndexAccount(context.Background(), &entity.Account{ID: "acc-1"})
	assert.Error(t, err)
}

func TestEnsureIndex_CreatesMissingIndex(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
		body  string
	)
	exists := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			body = string(b)
		}
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodHead && !exists:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut:
			exists = true
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient(ClientConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	x := NewAccountIndexer(es, "accounts")

	require.NoError(t, x.EnsureIndex(context.Background()))
	require.NoError(t, x.EnsureIndex(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"HEAD /accounts", "PUT /accounts", "HEAD /accounts"}, calls)
	assert.Contains(t, body, `"email":         {"type": "keyword"}`)
}

func TestNewClient_DisabledWithoutAddresses(t *testing.T) {
	es, err := NewClient(ClientConfig{})
	assert.NoError(t, err)
	assert.Nil(t, es)
}
