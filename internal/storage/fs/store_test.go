package fs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/storage"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Put(ctx, []byte("content"))
	require.NoError(t, err)

	got, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), got)

	require.NoError(t, s.Delete(ctx, ref))
	require.NoError(t, s.Delete(ctx, ref))

	_, err = s.Get(ctx, ref)
	assert.ErrorIs(t, err, storage.ErrContentNotFound)
}

func TestStore_RejectsTraversal(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrContentNotFound)
}

func TestNewStore_RequiresRoot(t *testing.T) {
	_, err := NewStore("")
	assert.Error(t, err)
}
