package storage

import (
	"bytes"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedImage is returned for uploads that are not jpeg, png or gif.
var ErrUnsupportedImage = errors.New("only images are allowed")

const sniffLen = 3072

var allowedImages = []string{"image/jpeg", "image/png", "image/gif"}

// SniffImage inspects the head of r and returns the detected content type,
// the canonical extension and a reader that still yields the full payload.
func SniffImage(r io.Reader) (string, string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", "", nil, err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	for _, allowed := range allowedImages {
		if mt.Is(allowed) {
			return allowed, mt.Extension(), io.MultiReader(bytes.NewReader(head), r), nil
		}
	}
	return "", "", nil, ErrUnsupportedImage
}
