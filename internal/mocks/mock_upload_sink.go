package mocks

import (
	"context"
	"io"

	"github.com/oksasatya/go-auth-portal/internal/application"
)

// MockUploadSink implements application.UploadSink for testing.
// By default it drains the reader and returns "/uploads/<folder>/file<ext>".
type MockUploadSink struct {
	SaveFunc   func(ctx context.Context, folder, ext, contentType string, r io.Reader) (string, error)
	DeleteFunc func(ctx context.Context, url string) error
	Saved      [][]byte
	Deleted    []string
}

func (m *MockUploadSink) Save(ctx context.Context, folder, ext, contentType string, r io.Reader) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, folder, ext, contentType, r)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.Saved = append(m.Saved, b)
	return "/uploads/" + folder + "/file" + ext, nil
}

func (m *MockUploadSink) Delete(ctx context.Context, url string) error {
	m.Deleted = append(m.Deleted, url)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, url)
	}
	return nil
}

var _ application.UploadSink = (*MockUploadSink)(nil)
