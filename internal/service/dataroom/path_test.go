package dataroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "dataroom/internal/domain/models/dataroom"
)

func strPtr(s string) *string { return &s }

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "A", JoinPath("", "A"))
	assert.Equal(t, "A/B", JoinPath("A", "B"))
}

func TestBuildTreeAndWalk(t *testing.T) {
	folders := []models.Folder{
		{ID: "a", Name: "A", Path: "A"},
		{ID: "b", Name: "B", ParentID: strPtr("a"), Path: "A/B"},
		{ID: "c", Name: "C", ParentID: strPtr("b"), Path: "A/B/C"},
		{ID: "d", Name: "D", Path: "D"},
	}
	files := []models.File{
		{ID: "f1", Name: "root.pdf"},
		{ID: "f2", Name: "deep.pdf", FolderID: strPtr("c")},
	}

	tree := BuildTree(folders, files)
	require.Len(t, tree.Folders, 2)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "root.pdf", tree.Files[0].Name)

	var order []string
	for node := range Walk(tree) {
		order = append(order, node.ID)
		// Path invariant holds for every node
		for _, child := range node.Folders {
			assert.Equal(t, JoinPath(node.Path, child.Name), child.Path)
		}
	}
	assert.Equal(t, []string{"a", "d", "b", "c"}, order)

	// Restartable
	var again []string
	for node := range Walk(tree) {
		again = append(again, node.ID)
	}
	assert.Equal(t, order, again)

	// Early stop
	count := 0
	for range Walk(tree) {
		count++
		break
	}
	assert.Equal(t, 1, count)

	var deep *models.FolderTreeNode
	for node := range Walk(tree) {
		if node.ID == "c" {
			deep = node
		}
	}
	require.NotNil(t, deep)
	require.Len(t, deep.Files, 1)
	assert.Equal(t, "deep.pdf", deep.Files[0].Name)
}
