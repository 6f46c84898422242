package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// FileService handles uploads and file metadata
type FileService interface {
	// UploadFile validates, stores and registers a PDF.
	// A colliding name is auto-renamed to "stem (n).pdf".
	UploadFile(ctx context.Context, userID string, req *UploadFileRequest) (*dataroom.File, error)

	// GetFile retrieves file metadata
	GetFile(ctx context.Context, userID, fileID string) (*dataroom.File, error)

	// UpdateFile renames and/or moves a file
	UpdateFile(ctx context.Context, userID, fileID string, req *UpdateFileRequest) (*dataroom.File, error)

	// DeleteFile deletes a file and releases its bytes
	DeleteFile(ctx context.Context, userID, fileID string) error

	// DownloadFile returns the file and its stored bytes
	DownloadFile(ctx context.Context, userID, fileID string) (*dataroom.File, []byte, error)
}

// UploadFileRequest represents an upload
type UploadFileRequest struct {
	RoomID       string
	FolderID     *string // nil for root
	DeclaredName string
	Data         []byte
}

// UpdateFileRequest represents a file update request
type UpdateFileRequest struct {
	Name     *string  // rename; the original extension is re-applied
	FolderID Optional // move; null moves to root
}
