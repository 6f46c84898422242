package dataroom

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/repository/memory"
	"dataroom/internal/service/auth"
)

func resultNames(res *models.SearchResults) []string {
	names := make([]string, 0, len(res.Results))
	for _, r := range res.Results {
		names = append(names, r.Name)
	}
	return names
}

func TestSearchRejectsBadRequests(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	room := h.room(t, "Deal")

	_, err := h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{RoomID: room.ID, Query: "   ", SearchNames: true})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)

	_, err = h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{RoomID: room.ID, Query: "x"})
	assert.ErrorIs(t, err, domain.ErrNoSearchScopeSelected)

	_, err = h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{RoomID: "nope", Query: "x", SearchNames: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Scenario: names and content across folders, with case rules and ordering
func TestSearchNamesAndContent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	room := h.room(t, "Deal")

	finance := h.folder(t, room.ID, nil, "Finance")
	h.folder(t, room.ID, &finance.ID, "Budget")
	budgetFile := h.upload(t, room.ID, &finance.ID, "budget.pdf", "forecast for 2025")
	h.upload(t, room.ID, nil, "notes.pdf", "the BUDGET was approved")
	h.upload(t, room.ID, nil, "misc.pdf", "nothing here")

	res, err := h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
		RoomID: room.ID, Query: "budget", SearchNames: true, SearchContent: true, CaseInsensitive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget", "budget.pdf", "notes.pdf"}, resultNames(res))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.FoldersCount)
	assert.Equal(t, 2, res.FilesCount)

	folderHit := res.Results[0]
	assert.Equal(t, models.ResultTypeFolder, folderHit.Type)
	assert.Equal(t, "Finance/Budget", folderHit.Path)
	require.NotNil(t, folderHit.ParentFolder)
	assert.Equal(t, finance.ID, folderHit.ParentFolder.ID)

	fileHit := res.Results[1]
	assert.Equal(t, budgetFile.ID, fileHit.ID)
	assert.Equal(t, "Finance/budget.pdf", fileHit.Path)
	require.NotNil(t, fileHit.Folder)
	assert.Equal(t, "Finance", fileHit.Folder.Name)
	assert.Equal(t, []models.MatchKind{models.MatchKindName}, fileHit.MatchKinds)
	assert.Equal(t, room.Name, fileHit.Room.Name)

	assert.Equal(t, []models.MatchKind{models.MatchKindContent}, res.Results[2].MatchKinds)
	assert.Nil(t, res.Results[2].Folder)

	// Case-sensitive misses the upper-case content and the capitalised folder
	res, err = h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
		RoomID: room.ID, Query: "budget", SearchNames: true, SearchContent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"budget.pdf"}, resultNames(res))

	// Content only never returns folders
	res, err = h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
		RoomID: room.ID, Query: "budget", SearchContent: true, CaseInsensitive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.pdf"}, resultNames(res))
	assert.Zero(t, res.FoldersCount)
}

func TestSearchContainment(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	room := h.room(t, "Deal")
	h.folder(t, room.ID, nil, "Quarterly Report")
	h.upload(t, room.ID, nil, "report-q1.pdf", "revenue report")
	h.upload(t, room.ID, nil, "summary.pdf", "Report attached")

	search := func(query string, names, content, ci bool) map[string]bool {
		res, err := h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
			RoomID: room.ID, Query: query, SearchNames: names, SearchContent: content, CaseInsensitive: ci,
		})
		require.NoError(t, err)
		ids := make(map[string]bool, len(res.Results))
		for _, r := range res.Results {
			ids[r.ID] = true
		}
		return ids
	}

	for _, q := range []string{"report", "Report", "REPORT", "ort"} {
		sensitive := search(q, true, true, false)
		insensitive := search(q, true, true, true)
		for id := range sensitive {
			assert.True(t, insensitive[id], "case-sensitive hit %s missing from case-insensitive results for %q", id, q)
		}

		both := search(q, true, true, true)
		for id := range search(q, true, false, true) {
			assert.True(t, both[id])
		}
		for id := range search(q, false, true, true) {
			assert.True(t, both[id])
		}
	}
}

func TestSearchExtractsPendingFilesOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	room := h.room(t, "Deal")

	file := h.upload(t, room.ID, nil, "plain.pdf", "hidden treasure")
	assert.Equal(t, models.TextStatusPending, file.TextStatus)
	assert.Zero(t, h.extractor.calls.Load())

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
				RoomID: room.ID, Query: "treasure", SearchContent: true,
			})
			assert.NoError(t, err)
			assert.Equal(t, 1, res.Total)
		}()
	}
	wg.Wait()

	// Once persisted, later searches do not extract again
	calls := h.extractor.calls.Load()
	_, err := h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
		RoomID: room.ID, Query: "treasure", SearchContent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, calls, h.extractor.calls.Load())

	got, err := h.files.GetFile(ctx, owner, file.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TextStatusExtracted, got.TextStatus)
}

func TestSearchExtractionFailureDegrades(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.extractor.fail = true
	room := h.room(t, "Deal")
	file := h.upload(t, room.ID, nil, "broken.pdf", "words")

	res, err := h.search.Search(ctx, owner, &dataroomSvc.SearchRequest{
		RoomID: room.ID, Query: "broken", SearchNames: true, SearchContent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"broken.pdf"}, resultNames(res))

	got, err := h.files.GetFile(ctx, owner, file.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TextStatusNone, got.TextStatus)
}

func TestMatchRoomOrdering(t *testing.T) {
	room := &models.Room{ID: "r", Name: "Room"}
	folders := []models.Folder{{ID: "f2", Name: "alpha", Path: "alpha"}}
	files := []models.File{
		{ID: "b", Name: "Alpha"},
		{ID: "a", Name: "ALPHA"},
		{ID: "c", Name: "beta alpha"},
	}

	res := MatchRoom(room, folders, files, "alpha", true, false, true)
	var ids []string
	for _, r := range res.Results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"f2", "a", "b", "c"}, ids)
}

func TestAutocomplete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	room := h.room(t, "Deal")
	for range 12 {
		h.upload(t, room.ID, nil, "invoice.pdf", "x")
	}
	h.upload(t, room.ID, nil, "contract.pdf", "x")

	got, err := h.search.Autocomplete(ctx, owner, room.ID, "i")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = h.search.Autocomplete(ctx, owner, room.ID, "INV")
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = h.search.Autocomplete(ctx, owner, room.ID, "contr")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "contract.pdf", got[0].Name)

	_, err = h.search.Autocomplete(ctx, stranger, room.ID, "contr")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// gatedExtractor blocks until release is closed or its context ends
type gatedExtractor struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedExtractor) ExtractText(ctx context.Context, ref, mimeType string) (*string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	text := "hidden treasure"
	return &text, nil
}

func TestSearchCancelledCallerDoesNotSpoilSharedExtraction(t *testing.T) {
	h := newHarness(t, false)
	room := h.room(t, "Deal")
	file := h.upload(t, room.ID, nil, "plain.pdf", "ignored")

	gate := &gatedExtractor{started: make(chan struct{}), release: make(chan struct{})}
	roomRepo := memory.NewRoomRepository(h.db)
	folderRepo := memory.NewFolderRepository(h.db)
	fileRepo := memory.NewFileRepository(h.db)
	search := NewSearchService(roomRepo, folderRepo, fileRepo, gate,
		auth.NewOwnerBasedAuthorizer(roomRepo, folderRepo, fileRepo),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := &dataroomSvc.SearchRequest{RoomID: room.ID, Query: "treasure", SearchContent: true}

	ctx1, cancel1 := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := search.Search(ctx1, owner, req)
		firstErr <- err
	}()

	<-gate.started
	cancel1()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	second := make(chan *models.SearchResults, 1)
	go func() {
		res, err := search.Search(context.Background(), owner, req)
		assert.NoError(t, err)
		second <- res
	}()
	close(gate.release)

	res := <-second
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Total)

	got, err := h.files.GetFile(context.Background(), owner, file.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TextStatusExtracted, got.TextStatus)
}
