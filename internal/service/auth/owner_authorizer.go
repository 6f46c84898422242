package auth

import (
	"context"
	"fmt"

	"dataroom/internal/domain"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a resource if they own the room that contains it.
//
// Unknown ids surface as domain.ErrNotFound. A resource that exists in
// somebody else's room is domain.ErrForbidden.
type OwnerBasedAuthorizer struct {
	roomRepo   dataroomRepo.RoomRepository
	folderRepo dataroomRepo.FolderRepository
	fileRepo   dataroomRepo.FileRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	roomRepo dataroomRepo.RoomRepository,
	folderRepo dataroomRepo.FolderRepository,
	fileRepo dataroomRepo.FileRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		roomRepo:   roomRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
	}
}

// CanAccessRoom checks if user owns the room
func (a *OwnerBasedAuthorizer) CanAccessRoom(ctx context.Context, userID, roomID string) error {
	room, err := a.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.OwnerID != userID {
		return fmt.Errorf("room %s: %w", roomID, domain.NewForbidden("data room", roomID))
	}
	return nil
}

// CanAccessFolder checks if user can access a folder (via its room)
func (a *OwnerBasedAuthorizer) CanAccessFolder(ctx context.Context, userID, folderID string) error {
	folder, err := a.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return err
	}
	return a.CanAccessRoom(ctx, userID, folder.RoomID)
}

// CanAccessFile checks if user can access a file (via its room)
func (a *OwnerBasedAuthorizer) CanAccessFile(ctx context.Context, userID, fileID string) error {
	file, err := a.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	return a.CanAccessRoom(ctx, userID, file.RoomID)
}
