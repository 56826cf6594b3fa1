package application

import (
	"context"
	"io"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

// Notifier delivers a templated email of the given kind.
// Implementations live in pkg/mailer.
type Notifier interface {
	Send(ctx context.Context, kind, to string, payload map[string]any) error
}

// AccountIndexer mirrors a redacted account into a search index.
type AccountIndexer interface {
	IndexAccount(ctx context.Context, a *entity.Account) error
}

// UploadSink stores an uploaded object and returns its public URL.
// Delete takes such a URL and ignores ones the sink does not own.
type UploadSink interface {
	Save(ctx context.Context, folder, ext, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Image is an already sniffed upload.
type Image struct {
	ContentType string
	Ext         string
	Body        io.Reader
}
