package handler

import (
	"log/slog"
	"net/http"

	dataroomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
)

// SearchHandler handles search HTTP requests
type SearchHandler struct {
	searchService dataroomSvc.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService dataroomSvc.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search matches folders and files of one room.
// Every scope flag defaults to true when omitted.
// GET /api/search?q=&dataroom_id=&search_names=&search_content=&case_insensitive=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	results, err := h.searchService.Search(r.Context(), userID, &dataroomSvc.SearchRequest{
		RoomID:          q.Get("dataroom_id"),
		Query:           q.Get("q"),
		SearchNames:     httputil.QueryBool(r, "search_names", true),
		SearchContent:   httputil.QueryBool(r, "search_content", true),
		CaseInsensitive: httputil.QueryBool(r, "case_insensitive", true),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// Autocomplete suggests file names
// GET /api/search/autocomplete?q=&dataroom_id=
func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	suggestions, err := h.searchService.Autocomplete(r.Context(), userID, q.Get("dataroom_id"), q.Get("q"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
