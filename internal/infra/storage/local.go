package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// pathPrefix namespaces every stored path, so that article rows carry
// paths like "uploads/3f1c….png" rather than bare filenames.
const pathPrefix = "uploads"

// LocalStore is a BlobStore backed by a directory on the local filesystem.
type LocalStore struct {
	root    string // directory blobs are written to
	baseURL string // public URL prefix the directory is served under
}

// NewLocalStore creates a filesystem-backed store rooted at dir.
// Stored paths resolve to URLs under baseURL (e.g. "/storage").
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Store(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	f, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("store blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("store blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("store blob: %w", err)
	}
	if err := os.Rename(f.Name(), filepath.Join(s.root, name)); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("store blob: %w", err)
	}

	return path.Join(pathPrefix, name), nil
}

func (s *LocalStore) Delete(_ context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete blob: %w", err)
	}
	return true, nil
}

func (s *LocalStore) Exists(_ context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob: %w", err)
	}
	return true, nil
}

func (s *LocalStore) URL(p string) string {
	return s.baseURL + "/" + strings.TrimPrefix(p, pathPrefix+"/")
}

func (s *LocalStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		// In-flight temp files are not stored blobs yet.
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, path.Join(pathPrefix, e.Name()))
	}
	return paths, nil
}

// resolve maps a storage path to a filesystem path, rejecting anything
// that would escape the storage root.
func (s *LocalStore) resolve(p string) (string, error) {
	if !strings.HasPrefix(p, pathPrefix+"/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	name := strings.TrimPrefix(p, pathPrefix+"/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return filepath.Join(s.root, name), nil
}
