package dataroom

import "time"

// TreeNode represents the root of a room's tree
type TreeNode struct {
	Folders []*FolderTreeNode `json:"folders"`
	Files   []File            `json:"files"`
}

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	ParentID  *string           `json:"parent_id"`
	Path      string            `json:"path"`
	CreatedAt time.Time         `json:"created_at"`
	Folders   []*FolderTreeNode `json:"children"` // Pointers for proper nesting
	Files     []File            `json:"files"`
}
