package dataroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/storage"
)

// ResourceValidator resolves parent folders for create/move operations
type ResourceValidator struct {
	folderRepo dataroomRepo.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo dataroomRepo.FolderRepository) *ResourceValidator {
	return &ResourceValidator{folderRepo: folderRepo}
}

// ResolveParent returns the folder parentID points at, or nil for the room root.
// A folder that is missing or belongs to another room is ErrParentNotFound.
func (v *ResourceValidator) ResolveParent(ctx context.Context, roomID string, parentID *string) (*models.Folder, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := v.folderRepo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidation(domain.ErrParentNotFound, "parent folder not found in this data room")
		}
		return nil, fmt.Errorf("resolve parent folder: %w", err)
	}
	if parent.RoomID != roomID {
		return nil, domain.NewValidation(domain.ErrParentNotFound, "parent folder not found in this data room")
	}
	return parent, nil
}

// normalizeID treats an empty id as absent (room root)
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// treeScope names the lock every structural write to a room's tree takes
// before its first read. Cycle checks, sibling checks and path rewrites then
// never run against rows another transaction is still changing.
func treeScope(roomID string) string {
	return "tree:" + roomID
}

func parentPath(parent *models.Folder) string {
	if parent == nil {
		return ""
	}
	return parent.Path
}

// releaseContent deletes stored bytes once their metadata is gone.
// Failures only leave orphaned blobs, so they are logged and swallowed.
func releaseContent(ctx context.Context, store storage.ContentStore, logger *slog.Logger, refs []string) {
	for _, ref := range refs {
		if err := store.Delete(ctx, ref); err != nil {
			logger.Warn("failed to release content", "content_ref", ref, "error", err)
		}
	}
}

func noChanges(what string) error {
	return fmt.Errorf("%w: no %s fields to update", domain.ErrValidation, what)
}
