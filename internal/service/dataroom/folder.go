package dataroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
	"dataroom/internal/domain/repositories"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/domain/services"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/storage"
)

type folderService struct {
	folderRepo dataroomRepo.FolderRepository
	fileRepo   dataroomRepo.FileRepository
	store      storage.ContentStore
	txManager  repositories.TransactionManager
	validator  *ResourceValidator
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo dataroomRepo.FolderRepository,
	fileRepo dataroomRepo.FileRepository,
	store storage.ContentStore,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) dataroomSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		store:      store,
		txManager:  txManager,
		validator:  validator,
		authorizer: authorizer,
		logger:     logger,
	}
}

func folderConflict(name, existingID string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
		ResourceType: "folder",
		ResourceID:   existingID,
	}
}

// checkSibling fails with a conflict if another folder named name lives under parentID
func (s *folderService) checkSibling(ctx context.Context, roomID string, parentID *string, name, selfID string) error {
	existing, err := s.folderRepo.GetByName(ctx, roomID, parentID, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if existing.ID != selfID {
		return folderConflict(name, existing.ID)
	}
	return nil
}

// CreateFolder creates a new folder under the room root or a parent folder
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *dataroomSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.RoomID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorizer.CanAccessRoom(ctx, userID, req.RoomID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	parentID := normalizeID(req.ParentID)

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.txManager.LockScope(txCtx, treeScope(req.RoomID)); err != nil {
			return err
		}

		parent, err := s.validator.ResolveParent(txCtx, req.RoomID, parentID)
		if err != nil {
			return err
		}
		if err := s.checkSibling(txCtx, req.RoomID, parentID, name, ""); err != nil {
			return err
		}

		now := time.Now()
		folder = &models.Folder{
			RoomID:    req.RoomID,
			ParentID:  parentID,
			Name:      name,
			Path:      JoinPath(parentPath(parent), name),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"dataroom_id", folder.RoomID,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}
	return s.folderRepo.GetByID(ctx, folderID)
}

// UpdateFolder renames and/or moves a folder. Paths of the folder and all its
// descendants are rewritten in the same transaction.
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, req *dataroomSvc.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}
	if req.Name == nil && !req.ParentID.Present {
		return nil, noChanges("folder")
	}

	var newName *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := ValidateName(trimmed); err != nil {
			return nil, err
		}
		newName = &trimmed
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.lockFolder(txCtx, folderID)
		if err != nil {
			return err
		}

		targetParentID := folder.ParentID
		if req.ParentID.Present {
			targetParentID = normalizeID(req.ParentID.Value)
		}

		parent, err := s.validator.ResolveParent(txCtx, folder.RoomID, targetParentID)
		if err != nil {
			return err
		}
		if parent != nil {
			if err := s.validateNoCircularReference(txCtx, folder.ID, parent); err != nil {
				return err
			}
		}

		name := folder.Name
		if newName != nil {
			name = *newName
		}
		if err := s.checkSibling(txCtx, folder.RoomID, targetParentID, name, folder.ID); err != nil {
			return err
		}

		oldPath := folder.Path
		folder.Name = name
		folder.ParentID = targetParentID
		folder.Path = JoinPath(parentPath(parent), name)
		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		if folder.Path != oldPath {
			if err := s.folderRepo.RecomputeSubtreePaths(txCtx, folder.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// lockFolder takes the tree lock of the folder's room and returns the folder
// as committed after the lock. The room id never changes, so the first read
// only serves to find the lock.
func (s *folderService) lockFolder(ctx context.Context, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if err := s.txManager.LockScope(ctx, treeScope(folder.RoomID)); err != nil {
		return nil, err
	}
	return s.folderRepo.GetByID(ctx, folderID)
}

// validateNoCircularReference walks up from the proposed parent and fails if
// it reaches the folder being moved.
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID string, parent *models.Folder) error {
	visited := make(map[string]struct{})
	current := parent
	for {
		if current.ID == folderID {
			return domain.NewValidation(domain.ErrCycleDetected,
				"cannot move a folder into itself or one of its subfolders")
		}
		if _, seen := visited[current.ID]; seen {
			return fmt.Errorf("folder %s: ancestor chain loops", current.ID)
		}
		visited[current.ID] = struct{}{}

		if current.ParentID == nil {
			return nil
		}
		next, err := s.folderRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("walk ancestors: %w", err)
		}
		current = next
	}
}

// DeleteFolder deletes a folder, every descendant folder and every file in them
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return err
	}

	var folder *models.Folder
	var refs []string
	var subtree []string
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.lockFolder(txCtx, folderID)
		if err != nil {
			return err
		}

		subtree, err = s.folderRepo.ListSubtreeIDs(txCtx, folderID)
		if err != nil {
			return err
		}

		refs, err = s.fileRepo.DeleteByFolders(txCtx, subtree)
		if err != nil {
			return err
		}

		// Children before parents
		bottomUp := make([]string, len(subtree))
		for i, id := range subtree {
			bottomUp[len(subtree)-1-i] = id
		}
		return s.folderRepo.DeleteMany(txCtx, bottomUp)
	})
	if err != nil {
		return err
	}

	releaseContent(ctx, s.store, s.logger, refs)

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"dataroom_id", folder.RoomID,
		"folders_deleted", len(subtree),
		"files_deleted", len(refs),
	)

	return nil
}

// GetFolderContents lists a folder's immediate child folders and files, by name
func (s *folderService) GetFolderContents(ctx context.Context, userID, folderID string) (*dataroomSvc.FolderContents, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	var contents *dataroomSvc.FolderContents
	err := s.txManager.ExecReadTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			return err
		}
		children, err := s.folderRepo.ListChildren(txCtx, folder.RoomID, &folder.ID)
		if err != nil {
			return fmt.Errorf("failed to list child folders: %w", err)
		}
		files, err := s.fileRepo.ListByFolder(txCtx, folder.RoomID, &folder.ID)
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
		contents = &dataroomSvc.FolderContents{
			Folder:  folder,
			Folders: children,
			Files:   files,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contents, nil
}
