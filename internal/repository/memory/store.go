// Package memory implements the repositories on in-process maps. It backs
// tests and local runs without Postgres.
//
// Transactions are copy-on-write: ExecTx clones the committed state, runs the
// callback against the clone and swaps it in on success. Writers are
// serialized store-wide, readers outside a transaction only ever observe
// committed state.
package memory

import (
	"context"
	"fmt"
	"sync"

	"dataroom/internal/domain/models/dataroom"
	"dataroom/internal/domain/repositories"
)

type state struct {
	rooms   map[string]*dataroom.Room
	folders map[string]*dataroom.Folder
	files   map[string]*dataroom.File
}

func newState() *state {
	return &state{
		rooms:   make(map[string]*dataroom.Room),
		folders: make(map[string]*dataroom.Folder),
		files:   make(map[string]*dataroom.File),
	}
}

func (s *state) clone() *state {
	c := &state{
		rooms:   make(map[string]*dataroom.Room, len(s.rooms)),
		folders: make(map[string]*dataroom.Folder, len(s.folders)),
		files:   make(map[string]*dataroom.File, len(s.files)),
	}
	for id, r := range s.rooms {
		cp := *r
		c.rooms[id] = &cp
	}
	for id, f := range s.folders {
		cp := *f
		c.folders[id] = &cp
	}
	for id, f := range s.files {
		cp := *f
		c.files[id] = &cp
	}
	return c
}

// Store is the shared backing state for the memory repositories
type Store struct {
	txMu      sync.Mutex   // serializes writers
	mu        sync.RWMutex // guards committed
	committed *state
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{committed: newState()}
}

type txKey struct{}

type txState struct {
	store    *Store
	work     *state
	readOnly bool
}

func (s *Store) txFrom(ctx context.Context) *txState {
	tx, ok := ctx.Value(txKey{}).(*txState)
	if !ok || tx.store != s {
		return nil
	}
	return tx
}

// ExecTx implements repositories.TransactionManager
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	// Nested calls join the outer transaction
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, &txState{store: s, work: work})); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// ExecReadTx runs fn against a private copy of the committed state.
// Writes made inside are discarded.
func (s *Store) ExecReadTx(ctx context.Context, fn repositories.TxFn) error {
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := s.committed.clone()
	s.mu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, &txState{store: s, work: snapshot, readOnly: true}))
}

// LockScope is a no-op beyond checking the transaction: writers already hold
// the store-wide lock.
func (s *Store) LockScope(ctx context.Context, scope string) error {
	if tx := s.txFrom(ctx); tx == nil || tx.readOnly {
		return fmt.Errorf("lock scope %s: no transaction in context", scope)
	}
	return nil
}

// view runs fn against the transaction's working state, or the committed state
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx := s.txFrom(ctx); tx != nil {
		return fn(tx.work)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

// update runs fn inside the current transaction, or a transaction of its own
func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	if tx := s.txFrom(ctx); tx != nil {
		if tx.readOnly {
			return fmt.Errorf("write in read-only transaction")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(tx.work)
	}
	return s.ExecTx(ctx, func(txCtx context.Context) error {
		return fn(s.txFrom(txCtx).work)
	})
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
