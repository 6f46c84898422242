package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// RoomRepository defines data access operations for rooms
type RoomRepository interface {
	// Create creates a new room and fills in its ID and timestamps
	Create(ctx context.Context, room *dataroom.Room) error

	// GetByID retrieves a room by ID with its stats
	GetByID(ctx context.Context, id string) (*dataroom.Room, error)

	// ListByOwner lists a user's rooms, newest first, with stats
	ListByOwner(ctx context.Context, ownerID string) ([]dataroom.Room, error)

	// Update persists name and description changes
	Update(ctx context.Context, room *dataroom.Room) error

	// Delete deletes a room row. Folders and files must already be gone.
	Delete(ctx context.Context, id string) error
}
