package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	// Create creates a new file. A sibling name collision returns *domain.ConflictError.
	Create(ctx context.Context, file *dataroom.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id string) (*dataroom.File, error)

	// GetByName finds the file with the exact name in folderID (nil = root)
	GetByName(ctx context.Context, roomID string, folderID *string, name string) (*dataroom.File, error)

	// ListNamesWithPrefix returns the names in folderID that start with prefix
	ListNamesWithPrefix(ctx context.Context, roomID string, folderID *string, prefix string) ([]string, error)

	// Update persists name and folder
	Update(ctx context.Context, file *dataroom.File) error

	// SetExtractedText records the outcome of text extraction
	SetExtractedText(ctx context.Context, id string, text *string, status dataroom.TextStatus) error

	// ListByFolder lists files directly in folderID ordered by name
	ListByFolder(ctx context.Context, roomID string, folderID *string) ([]dataroom.File, error)

	// GetAllByRoom retrieves all files in a room including text fields
	GetAllByRoom(ctx context.Context, roomID string) ([]dataroom.File, error)

	// SuggestByName returns up to limit files whose name contains query, case-insensitively
	SuggestByName(ctx context.Context, roomID, query string, limit int) ([]dataroom.Suggestion, error)

	// Delete deletes a file
	Delete(ctx context.Context, id string) error

	// DeleteByFolders deletes every file in the given folders and returns their content refs
	DeleteByFolders(ctx context.Context, folderIDs []string) ([]string, error)

	// DeleteAllByRoom deletes every file of a room and returns their content refs
	DeleteAllByRoom(ctx context.Context, roomID string) ([]string, error)
}
