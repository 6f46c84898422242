package dataroom

import (
	"time"
)

// Room is an isolated workspace owned by a single user. Every room owns
// exactly one implicit root under which its folders and files live.
type Room struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	OwnerID     string     `json:"owner_id" db:"owner_id"` // immutable
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Stats       *RoomStats `json:"stats,omitempty"` // Populated on get/list, not stored
}

// RoomStats holds aggregate counts for a room
type RoomStats struct {
	TotalFolders int `json:"total_folders"`
	TotalFiles   int `json:"total_files"`
}

// RoomRef is the compact room reference embedded in search results
type RoomRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Structure is the full tree of a room as returned to clients
type Structure struct {
	Room      *Room             `json:"dataroom"`
	Folders   []*FolderTreeNode `json:"structure"`
	RootFiles []File            `json:"root_files"`
}
