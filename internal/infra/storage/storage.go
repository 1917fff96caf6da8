// Package storage keeps attachment and photo bytes away from the database.
// Records point at objects through an opaque key.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("storage: object not found")

type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// Get returns ErrObjectNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
}

// NewKey builds a collision free key under prefix, keeping only the
// extension of the original name.
func NewKey(prefix, originalName string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(originalName, "\\", "/")))
	if len(ext) > 10 {
		ext = ""
	}
	return path.Join(prefix, uuid.NewString()+ext)
}
