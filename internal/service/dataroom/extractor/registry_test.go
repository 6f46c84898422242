package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/storage"
	"dataroom/internal/storage/memory"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(context.Context, []byte) (string, error) { return s.text, s.err }
func (s *stubExtractor) SupportedMimeTypes() []string                   { return []string{"text/plain"} }

func TestRegistry_ExtractText(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ref, err := store.Put(ctx, []byte("hello"))
	require.NoError(t, err)

	r := NewRegistry(store)
	assert.NotNil(t, r.Get("APPLICATION/PDF"))

	t.Run("unsupported type", func(t *testing.T) {
		text, err := r.ExtractText(ctx, ref, "image/png")
		assert.NoError(t, err)
		assert.Nil(t, text)
	})

	t.Run("registered extractor", func(t *testing.T) {
		r.Register(&stubExtractor{text: "quarterly revenue"})
		text, err := r.ExtractText(ctx, ref, "text/plain")
		require.NoError(t, err)
		require.NotNil(t, text)
		assert.Equal(t, "quarterly revenue", *text)
	})

	t.Run("blank text is none", func(t *testing.T) {
		r.Register(&stubExtractor{text: "  \n"})
		text, err := r.ExtractText(ctx, ref, "text/plain")
		assert.NoError(t, err)
		assert.Nil(t, text)
	})

	t.Run("extractor error", func(t *testing.T) {
		r.Register(&stubExtractor{err: errors.New("corrupt")})
		_, err := r.ExtractText(ctx, ref, "text/plain")
		assert.Error(t, err)
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := r.ExtractText(ctx, "nope", "text/plain")
		assert.ErrorIs(t, err, storage.ErrContentNotFound)
	})
}

func TestPDFExtractor_InvalidInput(t *testing.T) {
	_, err := NewPDFExtractor().Extract(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}
