package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object is stored under the key.
var ErrNotFound = errors.New("object not found")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// BlobStore is an opaque key-value object store for snapshot documents.
type BlobStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Download returns the object body; the caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	Exists(ctx context.Context, key string) (bool, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
