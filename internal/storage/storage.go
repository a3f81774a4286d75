package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded files live. Paths are relative keys
// like "uploads/2026/01/<uuid>.png".
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	URL(path string) string
}
