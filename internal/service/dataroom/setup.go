package dataroom

import (
	"log/slog"

	"dataroom/internal/config"
	"dataroom/internal/domain/repositories"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
	"dataroom/internal/domain/services"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
	authSvc "dataroom/internal/service/auth"
	"dataroom/internal/storage"
)

// Repositories bundles the persistence ports the services depend on
type Repositories struct {
	Rooms     dataroomRepo.RoomRepository
	Folders   dataroomRepo.FolderRepository
	Files     dataroomRepo.FileRepository
	TxManager repositories.TransactionManager
}

// Services bundles the data room services
type Services struct {
	Rooms      dataroomSvc.RoomService
	Folders    dataroomSvc.FolderService
	Files      dataroomSvc.FileService
	Search     dataroomSvc.SearchService
	Authorizer services.ResourceAuthorizer
}

// SetupServices wires the data room services over repos and the content store
func SetupServices(
	repos Repositories,
	store storage.ContentStore,
	extractor dataroomSvc.TextExtractor,
	cfg *config.Config,
	logger *slog.Logger,
) *Services {
	authorizer := authSvc.NewOwnerBasedAuthorizer(repos.Rooms, repos.Folders, repos.Files)
	validator := NewResourceValidator(repos.Folders)

	return &Services{
		Rooms:   NewRoomService(repos.Rooms, repos.Folders, repos.Files, store, repos.TxManager, authorizer, logger),
		Folders: NewFolderService(repos.Folders, repos.Files, store, repos.TxManager, validator, authorizer, logger),
		Files: NewFileService(repos.Files, store, extractor, repos.TxManager, validator, authorizer, FileServiceConfig{
			MaxUploadBytes:  cfg.MaxUploadBytes,
			ExtractOnUpload: cfg.ExtractOnUpload,
		}, logger),
		Search:     NewSearchService(repos.Rooms, repos.Folders, repos.Files, extractor, authorizer, logger),
		Authorizer: authorizer,
	}
}
