package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*dataroom.Folder, error)

	// GetFolder retrieves a folder
	GetFolder(ctx context.Context, userID, folderID string) (*dataroom.Folder, error)

	// UpdateFolder renames and/or moves a folder
	UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*dataroom.Folder, error)

	// DeleteFolder deletes a folder with its whole subtree
	DeleteFolder(ctx context.Context, userID, folderID string) error

	// GetFolderContents lists immediate child folders and files
	GetFolderContents(ctx context.Context, userID, folderID string) (*FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	RoomID   string  `json:"dataroom_id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil for root
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	Name     *string  // rename
	ParentID Optional // move; null moves to root
}

// FolderContents represents a folder with its children
type FolderContents struct {
	Folder  *dataroom.Folder  `json:"folder"`
	Folders []dataroom.Folder `json:"subfolders"`
	Files   []dataroom.File   `json:"files"`
}
