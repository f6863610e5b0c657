package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory BlobStore used in tests and as a stand-in
// when no durable storage is configured.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Store(_ context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	p := path.Join(pathPrefix, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))

	s.mu.Lock()
	s.blobs[p] = data
	s.mu.Unlock()
	return p, nil
}

func (s *MemoryStore) Delete(_ context.Context, p string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[p]; !ok {
		return false, nil
	}
	delete(s.blobs, p)
	return true, nil
}

func (s *MemoryStore) Exists(_ context.Context, p string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[p]
	return ok, nil
}

func (s *MemoryStore) URL(p string) string {
	return "/" + p
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.blobs))
	for p := range s.blobs {
		paths = append(paths, p)
	}
	return paths, nil
}

// Blob returns the stored bytes for a path, for test assertions.
func (s *MemoryStore) Blob(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[p]
	return data, ok
}
