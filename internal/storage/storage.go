// Package storage keeps uploaded product images.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
)

var ErrNotExist = errors.New("file does not exist")

type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) error
	// Open returns ErrNotExist when name is not stored.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// cleanName strips any directory part so a name can never escape the store.
func cleanName(name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == "" {
		return "", ErrNotExist
	}
	return base, nil
}
