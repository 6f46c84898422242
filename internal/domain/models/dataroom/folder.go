package dataroom

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id" db:"id"`
	RoomID    string    `json:"dataroom_id" db:"dataroom_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = room root
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"` // Stored, recomputed on rename/move
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FolderRef is the compact folder reference embedded in search results
type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Ref returns the compact reference for f
func (f *Folder) Ref() *FolderRef {
	return &FolderRef{ID: f.ID, Name: f.Name, Path: f.Path}
}
