package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/storage"
)

func TestStore_InMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ref, err := s.Put(ctx, []byte("blob"))
	require.NoError(t, err)

	got, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)

	require.NoError(t, s.Delete(ctx, ref))
	_, err = s.Get(ctx, ref)
	assert.ErrorIs(t, err, storage.ErrContentNotFound)
}
