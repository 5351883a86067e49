package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores uploads in a directory on disk. Files are served by the
// HTTP layer under URLPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

// NewLocal creates the upload directory if needed and returns a Local
// backend rooted there.
func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir returns the directory uploads are written to.
func (l *Local) Dir() string { return l.dir }

// Name implements Backend.
func (l *Local) Name() string { return "local" }

// Save writes body to dir/key. Keys must be plain file names.
func (l *Local) Save(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("local save %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("local write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("local close %s: %w", key, err)
	}
	return l.urlPrefix + "/" + key, nil
}

// Delete removes dir/key. Deleting a missing file is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("local delete %s: %w", key, err)
	}
	return nil
}

func (l *Local) resolve(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(l.dir, key), nil
}
