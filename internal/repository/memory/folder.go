package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
	dataroomRepo "dataroom/internal/domain/repositories/dataroom"
)

// FolderRepository implements dataroomRepo.FolderRepository
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(store *Store) dataroomRepo.FolderRepository {
	return &FolderRepository{store: store}
}

// siblingConflict enforces the (room, parent, name) unique key
func siblingConflict(st *state, f *dataroom.Folder) error {
	for _, other := range st.folders {
		if other.ID != f.ID && other.RoomID == f.RoomID && other.Name == f.Name && sameParent(other.ParentID, f.ParentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", f.Name),
				ResourceType: "folder",
				ResourceID:   other.ID,
			}
		}
	}
	return nil
}

func (r *FolderRepository) Create(ctx context.Context, folder *dataroom.Folder) error {
	return r.store.update(ctx, func(st *state) error {
		if _, ok := st.rooms[folder.RoomID]; !ok {
			return fmt.Errorf("room %s: %w", folder.RoomID, domain.ErrNotFound)
		}
		if folder.ParentID != nil {
			if _, ok := st.folders[*folder.ParentID]; !ok {
				return fmt.Errorf("folder %s: %w", *folder.ParentID, domain.ErrParentNotFound)
			}
		}
		if err := siblingConflict(st, folder); err != nil {
			return err
		}
		if folder.ID == "" {
			folder.ID = uuid.NewString()
		}
		now := time.Now()
		if folder.CreatedAt.IsZero() {
			folder.CreatedAt = now
		}
		if folder.UpdatedAt.IsZero() {
			folder.UpdatedAt = now
		}
		cp := *folder
		st.folders[folder.ID] = &cp
		return nil
	})
}

func (r *FolderRepository) GetByID(ctx context.Context, id string) (*dataroom.Folder, error) {
	var folder dataroom.Folder
	err := r.store.view(ctx, func(st *state) error {
		found, ok := st.folders[id]
		if !ok {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		folder = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepository) GetByName(ctx context.Context, roomID string, parentID *string, name string) (*dataroom.Folder, error) {
	var folder *dataroom.Folder
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.folders {
			if f.RoomID == roomID && f.Name == name && sameParent(f.ParentID, parentID) {
				cp := *f
				folder = &cp
				return nil
			}
		}
		return fmt.Errorf("folder %q: %w", name, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (r *FolderRepository) Update(ctx context.Context, folder *dataroom.Folder) error {
	return r.store.update(ctx, func(st *state) error {
		existing, ok := st.folders[folder.ID]
		if !ok {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
		if err := siblingConflict(st, folder); err != nil {
			return err
		}
		existing.Name = folder.Name
		existing.ParentID = folder.ParentID
		existing.Path = folder.Path
		existing.UpdatedAt = folder.UpdatedAt
		return nil
	})
}

func (r *FolderRepository) RecomputeSubtreePaths(ctx context.Context, folderID string) error {
	return r.store.update(ctx, func(st *state) error {
		root, ok := st.folders[folderID]
		if !ok {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		children := childIndex(st, root.RoomID)
		queue := []*dataroom.Folder{root}
		for len(queue) > 0 {
			parent := queue[0]
			queue = queue[1:]
			for _, child := range children[parent.ID] {
				child.Path = parent.Path + "/" + child.Name
				queue = append(queue, child)
			}
		}
		return nil
	})
}

func (r *FolderRepository) ListChildren(ctx context.Context, roomID string, parentID *string) ([]dataroom.Folder, error) {
	folders := []dataroom.Folder{}
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.folders {
			if f.RoomID == roomID && sameParent(f.ParentID, parentID) {
				folders = append(folders, *f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortFolders(folders)
	return folders, nil
}

func (r *FolderRepository) ListSubtreeIDs(ctx context.Context, folderID string) ([]string, error) {
	var ids []string
	err := r.store.view(ctx, func(st *state) error {
		root, ok := st.folders[folderID]
		if !ok {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		children := childIndex(st, root.RoomID)
		ids = append(ids, root.ID)
		for i := 0; i < len(ids); i++ {
			for _, child := range children[ids[i]] {
				ids = append(ids, child.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *FolderRepository) GetAllByRoom(ctx context.Context, roomID string) ([]dataroom.Folder, error) {
	folders := []dataroom.Folder{}
	err := r.store.view(ctx, func(st *state) error {
		for _, f := range st.folders {
			if f.RoomID == roomID {
				folders = append(folders, *f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortFolders(folders)
	return folders, nil
}

func (r *FolderRepository) DeleteMany(ctx context.Context, ids []string) error {
	return r.store.update(ctx, func(st *state) error {
		for _, id := range ids {
			delete(st.folders, id)
		}
		return nil
	})
}

func (r *FolderRepository) DeleteAllByRoom(ctx context.Context, roomID string) error {
	return r.store.update(ctx, func(st *state) error {
		for id, f := range st.folders {
			if f.RoomID == roomID {
				delete(st.folders, id)
			}
		}
		return nil
	})
}

// childIndex maps parent id to child folders, children sorted by name
func childIndex(st *state, roomID string) map[string][]*dataroom.Folder {
	index := make(map[string][]*dataroom.Folder)
	for _, f := range st.folders {
		if f.RoomID == roomID && f.ParentID != nil {
			index[*f.ParentID] = append(index[*f.ParentID], f)
		}
	}
	for _, children := range index {
		sort.Slice(children, func(i, j int) bool {
			if children[i].Name != children[j].Name {
				return children[i].Name < children[j].Name
			}
			return children[i].ID < children[j].ID
		})
	}
	return index
}

func sortFolders(folders []dataroom.Folder) {
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Name != folders[j].Name {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].ID < folders[j].ID
	})
}
