package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// SearchService matches folders and files of a room against a query
type SearchService interface {
	// Search returns every folder and file in the room matching the request
	Search(ctx context.Context, userID string, req *SearchRequest) (*dataroom.SearchResults, error)

	// Autocomplete suggests file names containing prefix
	Autocomplete(ctx context.Context, userID, roomID, prefix string) ([]dataroom.Suggestion, error)
}

// SearchRequest selects the room, the query and which fields to match
type SearchRequest struct {
	RoomID          string `json:"dataroom_id"`
	Query           string `json:"query"`
	SearchNames     bool   `json:"search_names"`
	SearchContent   bool   `json:"search_content"`
	CaseInsensitive bool   `json:"case_insensitive"`
}
