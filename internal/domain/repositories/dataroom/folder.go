package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder. A sibling name collision returns *domain.ConflictError.
	Create(ctx context.Context, folder *dataroom.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*dataroom.Folder, error)

	// GetByName finds the sibling with the exact name under parentID (nil = root)
	GetByName(ctx context.Context, roomID string, parentID *string, name string) (*dataroom.Folder, error)

	// Update persists name, parent and path
	Update(ctx context.Context, folder *dataroom.Folder) error

	// RecomputeSubtreePaths rewrites the path of every descendant of folderID
	// from the folder's current stored path
	RecomputeSubtreePaths(ctx context.Context, folderID string) error

	// ListChildren lists immediate child folders ordered by name
	ListChildren(ctx context.Context, roomID string, parentID *string) ([]dataroom.Folder, error)

	// ListSubtreeIDs returns folderID followed by all its descendants, breadth-first
	ListSubtreeIDs(ctx context.Context, folderID string) ([]string, error)

	// GetAllByRoom retrieves all folders in a room (flat list)
	GetAllByRoom(ctx context.Context, roomID string) ([]dataroom.Folder, error)

	// DeleteMany deletes the given folders. ids must be ordered parents first.
	DeleteMany(ctx context.Context, ids []string) error

	// DeleteAllByRoom deletes every folder of a room
	DeleteAllByRoom(ctx context.Context, roomID string) error
}
