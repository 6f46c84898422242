package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dataroom/internal/storage"
)

// Store keeps each blob in its own file under a root directory.
// Blobs are fanned out into two-character subdirectories.
type Store struct {
	root string
}

// NewStore creates the root directory if needed
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) pathFor(ref string) (string, error) {
	if len(ref) < 3 || filepath.Base(ref) != ref {
		return "", fmt.Errorf("invalid content ref %q", ref)
	}
	return filepath.Join(s.root, ref[:2], ref), nil
}

func (s *Store) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := storage.NewRef()
	path, err := s.pathFor(ref)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}

	// Write to a temp file first so readers never see partial content
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write content: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit content: %w", err)
	}
	return ref, nil
}

func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("content %s: %w", ref, storage.ErrContentNotFound)
		}
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
