package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/config"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/repository/memory"
	dataroomService "dataroom/internal/service/dataroom"
	"dataroom/internal/service/dataroom/extractor"
	contentmem "dataroom/internal/storage/memory"
)

func newServices(t *testing.T) *dataroomService.Services {
	t.Helper()
	db := memory.NewStore()
	content := contentmem.NewStore()
	repos := dataroomService.Repositories{
		Rooms:     memory.NewRoomRepository(db),
		Folders:   memory.NewFolderRepository(db),
		Files:     memory.NewFileRepository(db),
		TxManager: db,
	}
	cfg := &config.Config{MaxUploadBytes: config.DefaultMaxUploadBytes}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dataroomService.SetupServices(repos, content, extractor.NewRegistry(content), cfg, logger)
}

func TestSampleApply(t *testing.T) {
	ctx := context.Background()
	services := newServices(t)
	seeder := NewSeeder(services, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := seeder.Apply(ctx, "dev-user", Sample())
	require.NoError(t, err)
	assert.Equal(t, &Result{Rooms: 2, Folders: 4, Files: 7}, res)

	rooms, err := services.Rooms.ListRooms(ctx, "dev-user")
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	var acme string
	for _, r := range rooms {
		if r.Name == "Acme Acquisition" {
			acme = r.ID
		}
	}
	require.NotEmpty(t, acme)

	structure, err := services.Rooms.GetStructure(ctx, "dev-user", acme)
	require.NoError(t, err)
	require.Len(t, structure.RootFiles, 1)
	assert.Equal(t, "Executive Summary.pdf", structure.RootFiles[0].Name)

	results, err := services.Search.Search(ctx, "dev-user", &dataroomSvc.SearchRequest{
		RoomID: acme, Query: "contracts", SearchNames: true, CaseInsensitive: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, results.FoldersCount)
	assert.Equal(t, "Legal/Contracts", results.Results[0].Path)

	// Second run is a no-op
	res, err = seeder.Apply(ctx, "dev-user", Sample())
	require.NoError(t, err)
	assert.Equal(t, &Result{Skipped: 2}, res)

	n, err := seeder.Clear(ctx, "dev-user")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	rooms, err = services.Rooms.ListRooms(ctx, "dev-user")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.pdf"), RenderPDF("board deck"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.yaml"), []byte(`
datarooms:
  - name: Board
    files:
      - name: Deck.pdf
        path: deck.pdf
`), 0o644))

	fx, err := Load(filepath.Join(dir, "seed.yaml"))
	require.NoError(t, err)

	services := newServices(t)
	res, err := NewSeeder(services, slog.New(slog.NewTextHandler(io.Discard, nil))).
		Apply(context.Background(), "dev-user", fx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
}

func TestParseRejectsUnnamedRoom(t *testing.T) {
	_, err := Parse([]byte("datarooms:\n  - description: x\n"), "")
	assert.Error(t, err)

	_, err = Parse([]byte("datarooms: [\n"), "")
	assert.Error(t, err)
}

func TestRenderPDFIsExtractable(t *testing.T) {
	data := RenderPDF("Quarterly revenue (draft)\nsecond line")
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF-1.4\n", string(data[:9]))

	text, err := extractor.NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "revenue")
}
