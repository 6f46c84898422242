package dataroom

import (
	"context"
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

type roomService struct {
	roomRepo   dataroomRepo.RoomRepository
	folderRepo dataroomRepo.FolderRepository
	fileRepo   dataroomRepo.FileRepository
	store      storage.ContentStore
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo dataroomRepo.RoomRepository,
	folderRepo dataroomRepo.FolderRepository,
	fileRepo dataroomRepo.FileRepository,
	store storage.ContentStore,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) dataroomSvc.RoomService {
	return &roomService{
		roomRepo:   roomRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		store:      store,
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

// normalizeDescription trims a description; blank means none
func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CreateRoom creates a new room owned by userID
func (s *roomService) CreateRoom(ctx context.Context, userID string, req *dataroomSvc.CreateRoomRequest) (*models.Room, error) {
	if err := validation.Validate(userID, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: user id %v", domain.ErrUnauthorized, err)
	}
	if err := ValidateRoomName(req.Name); err != nil {
		return nil, err
	}

	now := time.Now()
	room := &models.Room{
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeDescription(req.Description),
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	room.Stats = &models.RoomStats{}

	s.logger.Info("data room created",
		"id", room.ID,
		"name", room.Name,
		"owner_id", userID,
	)

	return room, nil
}

// GetRoom retrieves a room with its stats
func (s *roomService) GetRoom(ctx context.Context, userID, roomID string) (*models.Room, error) {
	if err := s.authorizer.CanAccessRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.roomRepo.GetByID(ctx, roomID)
}

// ListRooms lists the user's rooms, newest first
func (s *roomService) ListRooms(ctx context.Context, userID string) ([]models.Room, error) {
	return s.roomRepo.ListByOwner(ctx, userID)
}

// UpdateRoom renames a room and/or changes its description
func (s *roomService) UpdateRoom(ctx context.Context, userID, roomID string, req *dataroomSvc.UpdateRoomRequest) (*models.Room, error) {
	if err := s.authorizer.CanAccessRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}
	if req.Name == nil && !req.Description.Present {
		return nil, noChanges("data room")
	}
	if req.Name != nil {
		if err := ValidateRoomName(*req.Name); err != nil {
			return nil, err
		}
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = strings.TrimSpace(*req.Name)
	}
	// Tri-state: only touch the description if the field was present
	if req.Description.Present {
		room.Description = normalizeDescription(req.Description.Value)
	}
	room.UpdatedAt = time.Now()

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("data room updated",
		"id", room.ID,
		"name", room.Name,
	)

	return room, nil
}

// DeleteRoom deletes a room with every folder and file in it.
// Stored bytes are released after the metadata transaction commits.
func (s *roomService) DeleteRoom(ctx context.Context, userID, roomID string) error {
	if err := s.authorizer.CanAccessRoom(ctx, userID, roomID); err != nil {
		return err
	}

	var refs []string
	var folderCount int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// Uploads and moves into this room wait here, so every file row the
		// cascade removes has its ref collected below
		if err := s.txManager.LockScope(txCtx, treeScope(roomID)); err != nil {
			return err
		}
		folders, err := s.folderRepo.GetAllByRoom(txCtx, roomID)
		if err != nil {
			return fmt.Errorf("list room folders: %w", err)
		}
		folderCount = len(folders)

		refs, err = s.fileRepo.DeleteAllByRoom(txCtx, roomID)
		if err != nil {
			return err
		}
		if err := s.folderRepo.DeleteAllByRoom(txCtx, roomID); err != nil {
			return err
		}
		return s.roomRepo.Delete(txCtx, roomID)
	})
	if err != nil {
		return err
	}

	releaseContent(ctx, s.store, s.logger, refs)

	s.logger.Info("data room deleted",
		"id", roomID,
		"folders_deleted", folderCount,
		"files_deleted", len(refs),
	)

	return nil
}

// GetStructure returns the room's full tree from a single snapshot
func (s *roomService) GetStructure(ctx context.Context, userID, roomID string) (*models.Structure, error) {
	if err := s.authorizer.CanAccessRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}

	var structure *models.Structure
	err := s.txManager.ExecReadTx(ctx, func(txCtx context.Context) error {
		room, err := s.roomRepo.GetByID(txCtx, roomID)
		if err != nil {
			return err
		}
		folders, err := s.folderRepo.GetAllByRoom(txCtx, roomID)
		if err != nil {
			return err
		}
		files, err := s.fileRepo.GetAllByRoom(txCtx, roomID)
		if err != nil {
			return err
		}

		tree := BuildTree(folders, files)
		reached := 0
		for range Walk(tree) {
			reached++
		}
		if reached != len(folders) {
			s.logger.Warn("folders unreachable from the room root",
				"dataroom_id", roomID,
				"folders", len(folders),
				"reached", reached,
			)
		}
		structure = &models.Structure{
			Room:      room,
			Folders:   tree.Folders,
			RootFiles: tree.Files,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("data room structure built",
		"dataroom_id", roomID,
		"folder_count", structure.Room.Stats.TotalFolders,
		"file_count", structure.Room.Stats.TotalFiles,
	)

	return structure, nil
}
