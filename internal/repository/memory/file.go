package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
)

// FileRepository implements dataroomRepo.FileRepository
type FileRepository struct {
	store *Store
}

// NewFileRepository creates a new file repository
func NewFileRepository(store *Store) dataroomRepo.FileRepository {
	return &FileRepository{store: store}
}

// fileConflict enforces the (room, folder, name) unique key
func fileConflict(st *state, f *dataroom.File) error {
	for _, other := range st.files {
		if other.ID != f.ID && other.RoomID == f.RoomID && other.Name == f.Name && sameParent(other.FolderID, f.FolderID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", f.Name),
				ResourceType: "file",
				ResourceID:   other.ID,
			}
		}
	}
	return nil
}

func (r *FileRepository) Create(ctx context.Context, file *dataroom.File) error {
	return r.store.update(ctx, func(st *state) error {
		if _, ok := st.rooms[file.RoomID]; !ok {
			return fmt.Errorf("room %s: %w", file.RoomID, domain.ErrNotFound)
		}
		if file.FolderID != nil {
			if _, ok := st.folders[*file.FolderID]; !ok {
				return fmt.Errorf("folder %s: %w", *file.FolderID, domain.ErrParentNotFound)
			}
		}
		if err := fileConflict(st, file); err != nil {
			return err
		}
		if file.ID == "" {
			file.ID = uuid.NewString()
		}
		now := time.Now()
		if file.CreatedAt.IsZero() {
			file.CreatedAt = now
		}
		if file.UpdatedAt.IsZero() {
			file.UpdatedAt = now
		}
		cp := *file
		st.files[file.ID] = &cp
		return nil
	})
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*dataroom.File, error) {
	var file dataroom.File
	err := r.store.view(ctx, func(st *state) error {
		found, ok := st.files[id]
		if !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		file = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) GetByName(ctx context.Context, roomID string, folderID *string, name string) (*dataroom.File, error) {
	var file *dataroom.File
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.files {
			if f.RoomID == roomID && f.Name == name && sameParent(f.FolderID, folderID) {
				cp := *f
				file = &cp
				return nil
			}
		}
		return fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (r *FileRepository) ListNamesWithPrefix(ctx context.Context, roomID string, folderID *string, prefix string) ([]string, error) {
	names := []string{}
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.files {
			if f.RoomID == roomID && sameParent(f.FolderID, folderID) && strings.HasPrefix(f.Name, prefix) {
				names = append(names, f.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (r *FileRepository) Update(ctx context.Context, file *dataroom.File) error {
	return r.store.update(ctx, func(st *state) error {
		existing, ok := st.files[file.ID]
		if !ok {
			return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
		}
		if file.FolderID != nil {
			if _, ok := st.folders[*file.FolderID]; !ok {
				return fmt.Errorf("folder %s: %w", *file.FolderID, domain.ErrParentNotFound)
			}
		}
		if err := fileConflict(st, file); err != nil {
			return err
		}
		existing.Name = file.Name
		existing.FolderID = file.FolderID
		existing.UpdatedAt = file.UpdatedAt
		return nil
	})
}

func (r *FileRepository) SetExtractedText(ctx context.Context, id string, text *string, status dataroom.TextStatus) error {
	return r.store.update(ctx, func(st *state) error {
		existing, ok := st.files[id]
		if !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		existing.ContentText = text
		existing.TextStatus = status
		return nil
	})
}

func (r *FileRepository) ListByFolder(ctx context.Context, roomID string, folderID *string) ([]dataroom.File, error) {
	files := []dataroom.File{}
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.files {
			if f.RoomID == roomID && sameParent(f.FolderID, folderID) {
				files = append(files, *f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortFiles(files)
	return files, nil
}

func (r *FileRepository) GetAllByRoom(ctx context.Context, roomID string) ([]dataroom.File, error) {
	files := []dataroom.File{}
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.files {
			if f.RoomID == roomID {
				files = append(files, *f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortFiles(files)
	return files, nil
}

func (r *FileRepository) SuggestByName(ctx context.Context, roomID, query string, limit int) ([]dataroom.Suggestion, error) {
	var matches []dataroom.File
	needle := strings.ToLower(query)
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.files {
			if f.RoomID == roomID && strings.Contains(strings.ToLower(f.Name), needle) {
				matches = append(matches, *f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortFiles(matches)

	suggestions := []dataroom.Suggestion{}
	for _, f := range matches {
		if len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, dataroom.Suggestion{ID: f.ID, Name: f.Name})
	}
	return suggestions, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	return r.store.update(ctx, func(st *state) error {
		if _, ok := st.files[id]; !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		delete(st.files, id)
		return nil
	})
}

func (r *FileRepository) DeleteByFolders(ctx context.Context, folderIDs []string) ([]string, error) {
	refs := []string{}
	err := r.store.update(ctx, func(st *state) error {
		set := make(map[string]struct{}, len(folderIDs))
		for _, id := range folderIDs {
			set[id] = struct{}{}
		}
		for id, f := range st.files {
			if f.FolderID == nil {
				continue
			}
			if _, ok := set[*f.FolderID]; ok {
				refs = append(refs, f.ContentRef)
				delete(st.files, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *FileRepository) DeleteAllByRoom(ctx context.Context, roomID string) ([]string, error) {
	refs := []string{}
	err := r.store.update(ctx, func(st *state) error {
		for id, f := range st.files {
			if f.RoomID == roomID {
				refs = append(refs, f.ContentRef)
				delete(st.files, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func sortFiles(files []dataroom.File) {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Name != files[j].Name {
			return files[i].Name < files[j].Name
		}
		return files[i].ID < files[j].ID
	})
}
