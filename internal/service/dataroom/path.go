package dataroom

import (
	"iter"

	models "dataroom/internal/domain/models/dataroom"
)

// JoinPath builds a child's path from its parent's path. Root-level items
// (empty parentPath) have their bare name as path.
func JoinPath(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "/" + name
}

// BuildTree nests folders and files of a single room.
// Children keep the order of the input slices.
func BuildTree(folders []models.Folder, files []models.File) *models.TreeNode {
	folderMap := make(map[string]*models.FolderTreeNode, len(folders))

	// First pass: create all folder nodes
	for _, folder := range folders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			Path:      folder.Path,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Files:     []models.File{},
		}
	}

	// Second pass: connect children to parents
	tree := &models.TreeNode{
		Folders: []*models.FolderTreeNode{},
		Files:   []models.File{},
	}
	for _, folder := range folders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			tree.Folders = append(tree.Folders, node)
		} else if parent, ok := folderMap[*folder.ParentID]; ok {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: attach files
	for _, file := range files {
		if file.FolderID == nil {
			tree.Files = append(tree.Files, file)
		} else if parent, ok := folderMap[*file.FolderID]; ok {
			parent.Files = append(parent.Files, file)
		}
	}

	return tree
}

// Walk yields every folder of the tree breadth-first, parents before children.
// The sequence can be ranged over more than once.
func Walk(tree *models.TreeNode) iter.Seq[*models.FolderTreeNode] {
	return func(yield func(*models.FolderTreeNode) bool) {
		if tree == nil {
			return
		}
		queue := append([]*models.FolderTreeNode(nil), tree.Folders...)
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if !yield(node) {
				return
			}
			queue = append(queue, node.Folders...)
		}
	}
}
