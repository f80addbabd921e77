package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// BlobStore is the async key-value persistence behind the memory engine; in
// the browser deployment this is backed by IndexedDB-style storage, here by
// files. Get returns nil with no error when the key has never been set.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}

// FileBlobStore keeps each blob as one file under a directory.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FileBlobStore{dir: dir}, nil
}

func (s *FileBlobStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key)+".bin")
}

func (s *FileBlobStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

func (s *FileBlobStore) Set(key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

// MemoryBlobStore is an in-process store for tests and throwaway instances.
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[key], nil
}

func (s *MemoryBlobStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}
