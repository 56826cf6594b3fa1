package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalSink writes uploads below Dir and exposes them under PublicPath.
type LocalSink struct {
	Dir        string
	PublicPath string
}

func NewLocalSink(dir, publicPath string) *LocalSink {
	return &LocalSink{Dir: dir, PublicPath: publicPath}
}

func (s *LocalSink) Save(_ context.Context, folder, ext, _ string, r io.Reader) (string, error) {
	dir := filepath.Join(s.Dir, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return path.Join(s.PublicPath, folder, name), nil
}

// Delete removes an object previously returned by Save. Unknown URLs are ignored.
func (s *LocalSink) Delete(_ context.Context, url string) error {
	prefix := path.Clean(s.PublicPath) + "/"
	rel, ok := strings.CutPrefix(path.Clean(url), prefix)
	if !ok || rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}
