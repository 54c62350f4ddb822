package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a durable key-value store for small preference records.
type Store interface {
	// Get returns ok=false when key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put overwrites any previous value for key.
	Put(ctx context.Context, key string, value []byte) error
}

const prefsFile = "prefs.json"

// DefaultFilePath returns <user config dir>/placefilter/prefs.json.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "placefilter", prefsFile), nil
}

// FileStore keeps every key in one JSON object on disk, replaced atomically
// on each write.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readAll()
	if err != nil {
		return nil, false, err
	}
	v, ok := all[key]
	return v, ok, nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readAll()
	if err != nil {
		// a corrupt file is overwritten
		all = map[string]json.RawMessage{}
	}
	if !json.Valid(value) {
		return fmt.Errorf("prefs: value for %q is not JSON", key)
	}
	all[key] = json.RawMessage(value)
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	all := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return all, nil
}

// MemStore is an in-process Store, for tests and the "memory" backend.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
	// PutErr, when set, is returned by every Put.
	PutErr error
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}}
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}
