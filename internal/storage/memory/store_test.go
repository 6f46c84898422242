package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/storage"
)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	data := []byte("%PDF-1.4 hello")
	ref, err := s.Put(ctx, data)
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	// Mutating the caller's slice must not change stored content
	data[0] = 'X'

	got, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 hello", string(got))

	require.NoError(t, s.Delete(ctx, ref))
	_, err = s.Get(ctx, ref)
	assert.ErrorIs(t, err, storage.ErrContentNotFound)

	// Idempotent
	assert.NoError(t, s.Delete(ctx, ref))
	assert.Equal(t, 0, s.Len())
}

func TestStore_DistinctRefs(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	a, err := s.Put(ctx, []byte("a"))
	require.NoError(t, err)
	b, err := s.Put(ctx, []byte("a"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())
}
