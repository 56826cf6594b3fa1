package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSSink stores uploads as objects in a bucket and returns their public URL.
type GCSSink struct {
	client *storage.Client
	bucket string
}

func NewGCSSink(client *storage.Client, bucket string) *GCSSink {
	return &GCSSink{client: client, bucket: bucket}
}

func (s *GCSSink) Save(ctx context.Context, folder, ext, contentType string, r io.Reader) (string, error) {
	objectPath := path.Join(folder, uuid.NewString()+ext)
	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("gcs write %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", objectPath, err)
	}
	return publicURL(s.bucket, objectPath), nil
}

// Delete removes an object previously returned by Save. URLs outside the bucket are ignored.
func (s *GCSSink) Delete(ctx context.Context, url string) error {
	objectPath, ok := strings.CutPrefix(url, publicURL(s.bucket, ""))
	if !ok || objectPath == "" {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", objectPath, err)
	}
	return nil
}

func publicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
