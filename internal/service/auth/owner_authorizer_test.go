package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
	"dataroom/internal/repository/memory"
)

func TestOwnerBasedAuthorizer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rooms := memory.NewRoomRepository(store)
	folders := memory.NewFolderRepository(store)
	files := memory.NewFileRepository(store)
	authz := NewOwnerBasedAuthorizer(rooms, folders, files)

	room := &dataroom.Room{Name: "Deal", OwnerID: "alice"}
	require.NoError(t, rooms.Create(ctx, room))
	folder := &dataroom.Folder{RoomID: room.ID, Name: "Legal", Path: "Legal"}
	require.NoError(t, folders.Create(ctx, folder))
	file := &dataroom.File{RoomID: room.ID, FolderID: &folder.ID, Name: "nda.pdf", ContentRef: "ref"}
	require.NoError(t, files.Create(ctx, file))

	t.Run("owner", func(t *testing.T) {
		assert.NoError(t, authz.CanAccessRoom(ctx, "alice", room.ID))
		assert.NoError(t, authz.CanAccessFolder(ctx, "alice", folder.ID))
		assert.NoError(t, authz.CanAccessFile(ctx, "alice", file.ID))
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		assert.ErrorIs(t, authz.CanAccessRoom(ctx, "bob", room.ID), domain.ErrForbidden)
		assert.ErrorIs(t, authz.CanAccessFolder(ctx, "bob", folder.ID), domain.ErrForbidden)
		assert.ErrorIs(t, authz.CanAccessFile(ctx, "bob", file.ID), domain.ErrForbidden)
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		assert.ErrorIs(t, authz.CanAccessRoom(ctx, "alice", "missing"), domain.ErrNotFound)
		assert.ErrorIs(t, authz.CanAccessFolder(ctx, "alice", "missing"), domain.ErrNotFound)
		assert.ErrorIs(t, authz.CanAccessFile(ctx, "alice", "missing"), domain.ErrNotFound)
	})
}
