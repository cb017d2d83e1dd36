package service

import (
	"context"
	"io"
)

// ImageStore persists uploaded post images and returns a URL clients can
// reference from a post's image_url.
type ImageStore interface {
	// Put stores data under a fresh key and returns its public URL.
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)

	// Open streams a stored object. Unknown keys fail with domainerrors.ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
