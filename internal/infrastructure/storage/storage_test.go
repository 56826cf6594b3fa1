package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSniffImage_AcceptsPNGAndKeepsPayload(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 5000)...)

	ct, ext, r, err := SniffImage(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSniffImage_RejectsText(t *testing.T) {
	_, _, _, err := SniffImage(strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLocalSink_Save(t *testing.T) {
	dir := t.TempDir()
	sink := NewLocalSink(dir, "/uploads")

	url, err := sink.Save(context.Background(), "news", ".png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/news/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk, err := os.ReadFile(filepath.Join(dir, "news", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, onDisk)
}

type failingReader struct{ n int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		return 0, errors.New("connection reset")
	}
	k := copy(p, pngHeader[:r.n])
	r.n = 0
	return k, nil
}

func TestLocalSink_SaveNamesAreUnique(t *testing.T) {
	sink := NewLocalSink(t.TempDir(), "/uploads")

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		url, err := sink.Save(context.Background(), "news", ".png", "image/png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.False(t, seen[url], url)
		seen[url] = true
	}
}

func TestLocalSink_FailedCopyLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	sink := NewLocalSink(dir, "/uploads")

	_, err := sink.Save(context.Background(), "news", ".png", "image/png", &failingReader{n: 8})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "news"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalSink_Delete(t *testing.T) {
	dir := t.TempDir()
	sink := NewLocalSink(dir, "/uploads")

	url, err := sink.Save(context.Background(), "news", ".png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, sink.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, "news", filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))

	// already gone, or not ours
	assert.NoError(t, sink.Delete(context.Background(), url))
	assert.NoError(t, sink.Delete(context.Background(), "/elsewhere/x.png"))
	assert.NoError(t, sink.Delete(context.Background(), "/uploads/../secret.png"))
}
