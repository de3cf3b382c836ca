package storage

import (
	"context"
	"io"
	"time"
)

// ImageStorage is the storage surface for hotel images: direct puts for the
// thumbnail worker, presigned uploads for the management UI.
type ImageStorage interface {
	// Put stores an object at key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves an object by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Returns nil if the object doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for an object.
	GetURL(key string) string

	// PresignUpload returns a URL the client can PUT the object to directly,
	// valid for the given duration.
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}
