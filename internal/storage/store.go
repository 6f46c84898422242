// Package storage defines the content store that holds uploaded bytes.
// Metadata lives in the repositories; a file row only keeps the opaque
// reference returned by Put.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrContentNotFound is returned by Get when no content exists for a reference
var ErrContentNotFound = errors.New("content not found")

// ContentStore persists opaque blobs addressed by reference.
// Implementations must be safe for concurrent use.
type ContentStore interface {
	// Put stores data and returns a new reference to it
	Put(ctx context.Context, data []byte) (string, error)

	// Get returns the bytes stored under ref, or ErrContentNotFound
	Get(ctx context.Context, ref string) ([]byte, error)

	// Delete removes the content under ref. Deleting a missing ref is not an error.
	Delete(ctx context.Context, ref string) error
}

// NewRef generates a fresh content reference
func NewRef() string {
	return uuid.NewString()
}
