package dataroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"dataroom/internal/config"
	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/domain/services"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
)

type searchService struct {
	roomRepo   dataroomRepo.RoomRepository
	folderRepo dataroomRepo.FolderRepository
	fileRepo   dataroomRepo.FileRepository
	extractor  dataroomSvc.TextExtractor
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger

	// Collapses concurrent extractions of the same file across searches
	extractions singleflight.Group
}

// NewSearchService creates a new search service
func NewSearchService(
	roomRepo dataroomRepo.RoomRepository,
	folderRepo dataroomRepo.FolderRepository,
	fileRepo dataroomRepo.FileRepository,
	extractor dataroomSvc.TextExtractor,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) dataroomSvc.SearchService {
	return &searchService{
		roomRepo:   roomRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		extractor:  extractor,
		authorizer: authorizer,
		logger:     logger,
	}
}

// matcher tests substring containment under the requested case rule
type matcher struct {
	needle          string
	caseInsensitive bool
}

func newMatcher(query string, caseInsensitive bool) matcher {
	if caseInsensitive {
		query = strings.ToLower(query)
	}
	return matcher{needle: query, caseInsensitive: caseInsensitive}
}

func (m matcher) matches(haystack string) bool {
	if m.caseInsensitive {
		haystack = strings.ToLower(haystack)
	}
	return strings.Contains(haystack, m.needle)
}

// Search returns every folder and file of one room that matches the request
func (s *searchService) Search(ctx context.Context, userID string, req *dataroomSvc.SearchRequest) (*models.SearchResults, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.NewValidation(domain.ErrEmptyQuery, "search query is required")
	}
	if !req.SearchNames && !req.SearchContent {
		return nil, domain.NewValidation(domain.ErrNoSearchScopeSelected, "at least one search type must be selected")
	}
	if req.RoomID == "" {
		return nil, fmt.Errorf("%w: dataroom_id is required", domain.ErrValidation)
	}
	if err := s.authorizer.CanAccessRoom(ctx, userID, req.RoomID); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	folders, err := s.folderRepo.GetAllByRoom(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	files, err := s.fileRepo.GetAllByRoom(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}

	if req.SearchContent {
		if err := s.extractPending(ctx, files); err != nil {
			return nil, err
		}
	}

	results := MatchRoom(room, folders, files, query, req.SearchNames, req.SearchContent, req.CaseInsensitive)

	s.logger.Debug("search completed",
		"dataroom_id", req.RoomID,
		"query", query,
		"results", results.Total,
	)

	return results, nil
}

// extractPending fills in text for files that were never extracted and
// persists the outcome. Failures degrade the file to "none", never the search.
func (s *searchService) extractPending(ctx context.Context, files []models.File) error {
	if s.extractor == nil {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.ExtractionConcurrency)

	for i := range files {
		if files[i].TextStatus != models.TextStatusPending {
			continue
		}
		file := &files[i]
		g.Go(func() error {
			// The shared call outlives any one caller: a cancelled search stops
			// waiting for it but does not cut it short for the others
			ch := s.extractions.DoChan(file.ID, func() (any, error) {
				return s.extractOne(context.WithoutCancel(gctx), file), nil
			})
			select {
			case res := <-ch:
				ext := res.Val.(extraction)
				file.ContentText = ext.text
				file.TextStatus = ext.status
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	return g.Wait()
}

type extraction struct {
	text   *string
	status models.TextStatus
}

func (s *searchService) extractOne(ctx context.Context, file *models.File) extraction {
	text, err := s.extractor.ExtractText(ctx, file.ContentRef, file.MimeType)
	res := extraction{text: text, status: models.TextStatusExtracted}
	if err != nil {
		s.logger.Warn("lazy text extraction failed", "file_id", file.ID, "error", err)
		res = extraction{status: models.TextStatusNone}
	} else if text == nil {
		res.status = models.TextStatusNone
	}

	if err := s.fileRepo.SetExtractedText(ctx, file.ID, res.text, res.status); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("failed to persist extracted text", "file_id", file.ID, "error", err)
	}
	return res
}

// MatchRoom applies the matching rules to an already loaded room.
// Results are ordered by case-folded name, folders before files, then id.
func MatchRoom(
	room *models.Room,
	folders []models.Folder,
	files []models.File,
	query string,
	searchNames, searchContent, caseInsensitive bool,
) *models.SearchResults {
	m := newMatcher(query, caseInsensitive)
	roomRef := models.RoomRef{ID: room.ID, Name: room.Name}

	folderByID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		folderByID[folders[i].ID] = &folders[i]
	}
	refFor := func(id *string) *models.FolderRef {
		if id == nil {
			return nil
		}
		if f, ok := folderByID[*id]; ok {
			return f.Ref()
		}
		return nil
	}

	out := &models.SearchResults{
		Query:   query,
		Results: []models.SearchResult{},
	}

	if searchNames {
		for _, f := range folders {
			if !m.matches(f.Name) {
				continue
			}
			out.Results = append(out.Results, models.SearchResult{
				ID:           f.ID,
				Type:         models.ResultTypeFolder,
				Name:         f.Name,
				MatchKinds:   []models.MatchKind{models.MatchKindName},
				Room:         roomRef,
				Path:         f.Path,
				ParentFolder: refFor(f.ParentID),
			})
			out.FoldersCount++
		}
	}

	for _, f := range files {
		var kinds []models.MatchKind
		if searchNames && m.matches(f.Name) {
			kinds = append(kinds, models.MatchKindName)
		}
		if searchContent && f.TextStatus == models.TextStatusExtracted && f.ContentText != nil && m.matches(*f.ContentText) {
			kinds = append(kinds, models.MatchKindContent)
		}
		if len(kinds) == 0 {
			continue
		}

		folder := refFor(f.FolderID)
		path := f.Name
		if folder != nil {
			path = JoinPath(folder.Path, f.Name)
		}
		out.Results = append(out.Results, models.SearchResult{
			ID:         f.ID,
			Type:       models.ResultTypeFile,
			Name:       f.Name,
			MatchKinds: kinds,
			Room:       roomRef,
			Path:       path,
			Folder:     folder,
			FileSize:   f.FileSize,
		})
		out.FilesCount++
	}

	sortResults(out.Results)
	out.Total = len(out.Results)
	return out
}

func sortResults(results []models.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		if a.Type != b.Type {
			return a.Type == models.ResultTypeFolder
		}
		return a.ID < b.ID
	})
}

// Autocomplete suggests up to ten file names containing prefix.
// Queries shorter than two characters return nothing.
func (s *searchService) Autocomplete(ctx context.Context, userID, roomID, prefix string) ([]models.Suggestion, error) {
	if err := s.authorizer.CanAccessRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}

	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < config.MinAutocompleteQueryLength {
		return []models.Suggestion{}, nil
	}

	return s.fileRepo.SuggestByName(ctx, roomID, prefix, config.MaxAutocompleteResults)
}
