package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"dataroom/internal/storage"
)

const keyPrefix = "content:"

// Store keeps content in an embedded BadgerDB, for single-node deployments
// that want durable storage without a separate object store.
type Store struct {
	db *badger.DB
}

// NewStore opens (or creates) a BadgerDB at dir. An empty dir opens an
// in-memory database.
func NewStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func key(ref string) []byte {
	return []byte(keyPrefix + ref)
}

func (s *Store) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := storage.NewRef()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(ref), data)
	})
	if err != nil {
		return "", fmt.Errorf("put content: %w", err)
	}
	return ref, nil
}

func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(ref))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("content %s: %w", ref, storage.ErrContentNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(ref))
	})
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
