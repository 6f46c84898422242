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

// FileServiceConfig holds upload policy settings
type FileServiceConfig struct {
	MaxUploadBytes int64
	// ExtractOnUpload runs text extraction during upload; otherwise files are
	// left pending and extracted lazily by the first content search.
	ExtractOnUpload bool
}

type fileService struct {
	fileRepo   dataroomRepo.FileRepository
	store      storage.ContentStore
	extractor  dataroomSvc.TextExtractor
	txManager  repositories.TransactionManager
	validator  *ResourceValidator
	authorizer services.ResourceAuthorizer
	cfg        FileServiceConfig
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo dataroomRepo.FileRepository,
	store storage.ContentStore,
	extractor dataroomSvc.TextExtractor,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	authorizer services.ResourceAuthorizer,
	cfg FileServiceConfig,
	logger *slog.Logger,
) dataroomSvc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		store:      store,
		extractor:  extractor,
		txManager:  txManager,
		validator:  validator,
		authorizer: authorizer,
		cfg:        cfg,
		logger:     logger,
	}
}

// UploadFile validates, stores and registers a PDF
func (s *fileService) UploadFile(ctx context.Context, userID string, req *dataroomSvc.UploadFileRequest) (*models.File, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.RoomID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorizer.CanAccessRoom(ctx, userID, req.RoomID); err != nil {
		return nil, err
	}

	if err := CheckUpload(req.DeclaredName, req.Data, s.cfg.MaxUploadBytes); err != nil {
		return nil, err
	}
	name, err := SanitizeUploadName(req.DeclaredName)
	if err != nil {
		return nil, err
	}
	folderID := normalizeID(req.FolderID)

	// Fail fast before storing bytes; re-checked under the lock below
	if _, err := s.validator.ResolveParent(ctx, req.RoomID, folderID); err != nil {
		return nil, err
	}

	ref, err := s.store.Put(ctx, req.Data)
	if err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}

	text, status := s.initialText(ctx, ref)

	now := time.Now()
	file := &models.File{
		RoomID:       req.RoomID,
		FolderID:     folderID,
		OriginalName: name,
		FileSize:     int64(len(req.Data)),
		MimeType:     models.MimeTypePDF,
		ContentRef:   ref,
		ContentText:  text,
		TextStatus:   status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.txManager.LockScope(txCtx, treeScope(req.RoomID)); err != nil {
			return err
		}
		if _, err := s.validator.ResolveParent(txCtx, req.RoomID, folderID); err != nil {
			return err
		}

		existing, err := s.fileRepo.ListNamesWithPrefix(txCtx, req.RoomID, folderID, renamePrefix(name))
		if err != nil {
			return fmt.Errorf("list sibling names: %w", err)
		}
		taken := make(map[string]struct{}, len(existing))
		for _, n := range existing {
			taken[n] = struct{}{}
		}
		file.Name = UniqueName(name, taken)
		if err := ValidateName(file.Name); err != nil {
			return err
		}

		return s.fileRepo.Create(txCtx, file)
	})
	if err != nil {
		releaseContent(ctx, s.store, s.logger, []string{ref})
		return nil, err
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"original_name", file.OriginalName,
		"dataroom_id", file.RoomID,
		"folder_id", file.FolderID,
		"size", file.FileSize,
		"text_status", file.TextStatus,
	)

	return file, nil
}

// initialText extracts text at upload time when configured to
func (s *fileService) initialText(ctx context.Context, ref string) (*string, models.TextStatus) {
	if !s.cfg.ExtractOnUpload || s.extractor == nil {
		return nil, models.TextStatusPending
	}
	text, err := s.extractor.ExtractText(ctx, ref, models.MimeTypePDF)
	if err != nil {
		s.logger.Warn("text extraction failed", "content_ref", ref, "error", err)
		return nil, models.TextStatusNone
	}
	if text == nil {
		return nil, models.TextStatusNone
	}
	return text, models.TextStatusExtracted
}

// GetFile retrieves file metadata
func (s *fileService) GetFile(ctx context.Context, userID, fileID string) (*models.File, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	return s.fileRepo.GetByID(ctx, fileID)
}

// UpdateFile renames and/or moves a file. Unlike uploads, a name collision in
// the target folder is an error rather than an auto-rename.
func (s *fileService) UpdateFile(ctx context.Context, userID, fileID string, req *dataroomSvc.UpdateFileRequest) (*models.File, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	if req.Name == nil && !req.FolderID.Present {
		return nil, noChanges("file")
	}

	var file *models.File
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.fileRepo.GetByID(txCtx, fileID)
		if err != nil {
			return err
		}
		if err := s.txManager.LockScope(txCtx, treeScope(current.RoomID)); err != nil {
			return err
		}
		if file, err = s.fileRepo.GetByID(txCtx, fileID); err != nil {
			return err
		}

		name := file.Name
		if req.Name != nil {
			name = EnsureExtension(strings.TrimSpace(*req.Name), file.OriginalName)
			if err := ValidateName(name); err != nil {
				return err
			}
		}

		targetFolderID := file.FolderID
		if req.FolderID.Present {
			targetFolderID = normalizeID(req.FolderID.Value)
		}

		if _, err := s.validator.ResolveParent(txCtx, file.RoomID, targetFolderID); err != nil {
			return err
		}

		existing, err := s.fileRepo.GetByName(txCtx, file.RoomID, targetFolderID, name)
		switch {
		case err == nil && existing.ID != file.ID:
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", name),
				ResourceType: "file",
				ResourceID:   existing.ID,
			}
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("failed to check for duplicate names: %w", err)
		}

		file.Name = name
		file.FolderID = targetFolderID
		file.UpdatedAt = time.Now()
		return s.fileRepo.Update(txCtx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// DeleteFile deletes a file row, then releases its bytes
func (s *fileService) DeleteFile(ctx context.Context, userID, fileID string) error {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return err
	}

	var file *models.File
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		file, err = s.fileRepo.GetByID(txCtx, fileID)
		if err != nil {
			return err
		}
		return s.fileRepo.Delete(txCtx, fileID)
	})
	if err != nil {
		return err
	}

	releaseContent(ctx, s.store, s.logger, []string{file.ContentRef})

	s.logger.Info("file deleted",
		"id", file.ID,
		"name", file.Name,
		"dataroom_id", file.RoomID,
	)

	return nil
}

// DownloadFile returns the file and its stored bytes
func (s *fileService) DownloadFile(ctx context.Context, userID, fileID string) (*models.File, []byte, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return nil, nil, err
	}

	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.store.Get(ctx, file.ContentRef)
	if err != nil {
		return nil, nil, fmt.Errorf("load content for file %s: %w", file.ID, err)
	}

	return file, data, nil
}
