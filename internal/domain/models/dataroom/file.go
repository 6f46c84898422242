package dataroom

import (
	"time"
)

// MimeTypePDF is the only content type a room accepts
const MimeTypePDF = "application/pdf"

// TextStatus tracks whether searchable text has been extracted from a file
type TextStatus string

const (
	TextStatusPending   TextStatus = "pending"   // extraction not attempted yet
	TextStatusExtracted TextStatus = "extracted" // ContentText holds the text
	TextStatusNone      TextStatus = "none"      // extraction failed or produced nothing
)

type File struct {
	ID           string    `json:"id" db:"id"`
	RoomID       string    `json:"dataroom_id" db:"dataroom_id"`
	FolderID     *string   `json:"folder_id" db:"folder_id"` // NULL = room root
	Name         string    `json:"name" db:"name"`
	OriginalName string    `json:"original_name" db:"original_name"` // immutable
	FileSize     int64     `json:"file_size" db:"file_size"`
	MimeType     string    `json:"mime_type" db:"mime_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Content store and text index fields are never serialized to clients
	ContentRef  string     `json:"-" db:"content_ref"`
	ContentText *string    `json:"-" db:"content_text"`
	TextStatus  TextStatus `json:"-" db:"text_status"`
}
