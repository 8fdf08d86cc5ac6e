package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object for listing.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// Store is the object-storage surface the services need. Backed by an
// S3-compatible bucket in production and by Memory in tests.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// URL returns the public URL for a key.
	URL(key string) string
	// KeyFromURL inverts URL; ok is false for URLs outside this bucket.
	KeyFromURL(u string) (string, bool)
}
