package backend

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/config"
)

func TestOpenLocalBackends(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, name := range []string{config.StorageMemory, config.StorageFS, config.StorageBadger} {
		t.Run(name, func(t *testing.T) {
			cfg := &config.Config{StorageBackend: name, StorageDir: t.TempDir()}
			store, closer, err := Open(ctx, cfg, logger)
			require.NoError(t, err)
			defer closer.Close()

			ref, err := store.Put(ctx, []byte("%PDF-1.4"))
			require.NoError(t, err)
			data, err := store.Get(ctx, ref)
			require.NoError(t, err)
			assert.Equal(t, []byte("%PDF-1.4"), data)
			require.NoError(t, store.Delete(ctx, ref))
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, _, err := Open(context.Background(), &config.Config{StorageBackend: "tape"}, logger)
	assert.Error(t, err)
}

func TestGCSCredentials(t *testing.T) {
	assert.Nil(t, gcsCredentials("  "))
	assert.Len(t, gcsCredentials(`{"type":"service_account"}`), 1)
	assert.Len(t, gcsCredentials("/etc/sa.json"), 1)
}
