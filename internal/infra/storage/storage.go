// Package storage provides blob storage for uploaded article images.
// A BlobStore persists files under generated unique names and resolves
// publicly servable URLs for stored paths.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidPath indicates a storage path outside the store's namespace.
var ErrInvalidPath = errors.New("invalid storage path")

// BlobStore is the storage interface consumed by the article form.
type BlobStore interface {
	// Store writes the blob under a generated unique name that keeps the
	// extension of the original filename. It returns the storage path.
	Store(ctx context.Context, filename string, r io.Reader) (string, error)
	// Delete removes a stored blob. It reports whether a blob was removed;
	// deleting a missing path is not an error.
	Delete(ctx context.Context, path string) (bool, error)
	// Exists reports whether a blob is stored under the path.
	Exists(ctx context.Context, path string) (bool, error)
	// URL resolves the publicly retrievable URL for a stored path.
	URL(path string) string
	// List returns the paths of all stored blobs.
	List(ctx context.Context) ([]string, error)
}
