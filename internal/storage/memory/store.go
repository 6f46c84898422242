package memory

import (
	"context"
	"fmt"
	"sync"

	"dataroom/internal/storage"
)

// Store keeps content in a map. Used in tests and for local runs without disk.
type Store struct {
	mu      sync.RWMutex
	content map[string][]byte
}

// NewStore creates an empty in-memory content store
func NewStore() *Store {
	return &Store{content: make(map[string][]byte)}
}

func (s *Store) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := storage.NewRef()
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.content[ref] = buf
	s.mu.Unlock()
	return ref, nil
}

func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.content[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("content %s: %w", ref, storage.ErrContentNotFound)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.content, ref)
	s.mu.Unlock()
	return nil
}

// Len reports how many blobs are stored
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content)
}

// Has reports whether ref is stored
func (s *Store) Has(ref string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.content[ref]
	return ok
}
