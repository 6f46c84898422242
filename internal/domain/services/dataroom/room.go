package dataroom

import (
	"context"

	"dataroom/internal/domain/models/dataroom"
)

// RoomService handles room lifecycle
type RoomService interface {
	// CreateRoom creates a new room owned by userID
	CreateRoom(ctx context.Context, userID string, req *CreateRoomRequest) (*dataroom.Room, error)

	// GetRoom retrieves a room with its stats
	GetRoom(ctx context.Context, userID, roomID string) (*dataroom.Room, error)

	// ListRooms lists the user's rooms, newest first
	ListRooms(ctx context.Context, userID string) ([]dataroom.Room, error)

	// UpdateRoom renames a room and/or changes its description
	UpdateRoom(ctx context.Context, userID, roomID string, req *UpdateRoomRequest) (*dataroom.Room, error)

	// DeleteRoom deletes a room with every folder and file in it
	DeleteRoom(ctx context.Context, userID, roomID string) error

	// GetStructure returns the room's full tree
	GetStructure(ctx context.Context, userID, roomID string) (*dataroom.Structure, error)
}

// CreateRoomRequest represents a room creation request
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateRoomRequest represents a room update request
type UpdateRoomRequest struct {
	Name        *string  // rename
	Description Optional // absent = keep, null = clear
}
