// Package storage persists uploaded images. Two backends implement Backend:
// a local directory served by the API itself, and an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"
)

// Backend stores and removes objects by key and reports the public path
// of stored objects.
type Backend interface {
	// Name identifies the backend in upload records ("local" or "s3").
	Name() string
	// Save writes body under key and returns the path clients fetch it from.
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}

// NewFilename returns a collision-resistant object key of the form
// image-<unix-ms>-<random>.<ext>. ext is lowercased and may carry a
// leading dot.
func NewFilename(ext string, now time.Time) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return fmt.Sprintf("image-%d-%d.%s", now.UnixMilli(), rand.Int64N(1e9), ext)
}

var (
	_ Backend = (*Local)(nil)
	_ Backend = (*S3)(nil)
)
