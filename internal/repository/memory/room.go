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

// RoomRepository implements dataroomRepo.RoomRepository
type RoomRepository struct {
	store *Store
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(store *Store) dataroomRepo.RoomRepository {
	return &RoomRepository{store: store}
}

func (r *RoomRepository) Create(ctx context.Context, room *dataroom.Room) error {
	return r.store.update(ctx, func(st *state) error {
		if room.ID == "" {
			room.ID = uuid.NewString()
		}
		now := time.Now()
		if room.CreatedAt.IsZero() {
			room.CreatedAt = now
		}
		if room.UpdatedAt.IsZero() {
			room.UpdatedAt = now
		}
		cp := *room
		cp.Stats = nil
		st.rooms[room.ID] = &cp
		return nil
	})
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*dataroom.Room, error) {
	var room dataroom.Room
	err := r.store.view(ctx, func(st *state) error {
		found, ok := st.rooms[id]
		if !ok {
			return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
		}
		room = *found
		room.Stats = roomStats(st, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) ListByOwner(ctx context.Context, ownerID string) ([]dataroom.Room, error) {
	rooms := []dataroom.Room{}
	err := r.store.view(ctx, func(st *state) error {
		for _, room := range st.rooms {
			if room.OwnerID != ownerID {
				continue
			}
			cp := *room
			cp.Stats = roomStats(st, room.ID)
			rooms = append(rooms, cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *dataroom.Room) error {
	return r.store.update(ctx, func(st *state) error {
		existing, ok := st.rooms[room.ID]
		if !ok {
			return fmt.Errorf("room %s: %w", room.ID, domain.ErrNotFound)
		}
		existing.Name = room.Name
		existing.Description = room.Description
		existing.UpdatedAt = room.UpdatedAt
		return nil
	})
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	return r.store.update(ctx, func(st *state) error {
		if _, ok := st.rooms[id]; !ok {
			return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
		}
		delete(st.rooms, id)
		return nil
	})
}

func roomStats(st *state, roomID string) *dataroom.RoomStats {
	stats := &dataroom.RoomStats{}
	for _, f := range st.folders {
		if f.RoomID == roomID {
			stats.TotalFolders++
		}
	}
	for _, f := range st.files {
		if f.RoomID == roomID {
			stats.TotalFiles++
		}
	}
	return stats
}
