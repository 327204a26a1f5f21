// Package storage keeps uploaded documents (the CV) outside the database.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store persists objects by key and resolves the URL a browser should use
// to fetch them.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}
