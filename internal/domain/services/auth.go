package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// Current implementation: ownership-based (user owns the room).
//
// Unknown ids yield domain.ErrNotFound; resources in a room owned by
// someone else yield domain.ErrForbidden.
type ResourceAuthorizer interface {
	// CanAccessRoom checks if user can access a room
	CanAccessRoom(ctx context.Context, userID, roomID string) error

	// CanAccessFolder checks if user can access a folder (via its room)
	CanAccessFolder(ctx context.Context, userID, folderID string) error

	// CanAccessFile checks if user can access a file (via its room)
	CanAccessFile(ctx context.Context, userID, fileID string) error
}
