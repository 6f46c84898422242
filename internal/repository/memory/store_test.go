package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/domain"
	"dataroom/internal/domain/models/dataroom"
)

func seedRoom(t *testing.T, store *Store) *dataroom.Room {
	t.Helper()
	room := &dataroom.Room{Name: "Deal", OwnerID: "user-1"}
	require.NoError(t, NewRoomRepository(store).Create(context.Background(), room))
	return room
}

func TestExecTx_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	room := seedRoom(t, store)
	folders := NewFolderRepository(store)

	boom := errors.New("boom")
	err := store.ExecTx(ctx, func(ctx context.Context) error {
		require.NoError(t, folders.Create(ctx, &dataroom.Folder{RoomID: room.ID, Name: "A", Path: "A"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := folders.GetAllByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecTx_UncommittedWritesInvisibleOutside(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	room := seedRoom(t, store)
	folders := NewFolderRepository(store)

	err := store.ExecTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, folders.Create(txCtx, &dataroom.Folder{RoomID: room.ID, Name: "A", Path: "A"}))

		inside, err := folders.GetAllByRoom(txCtx, room.ID)
		require.NoError(t, err)
		assert.Len(t, inside, 1)

		outside, err := folders.GetAllByRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Empty(t, outside)
		return nil
	})
	require.NoError(t, err)

	all, err := folders.GetAllByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLockScope_RequiresTransaction(t *testing.T) {
	store := NewStore()
	assert.Error(t, store.LockScope(context.Background(), "folders:x:root"))
	assert.NoError(t, store.ExecTx(context.Background(), func(ctx context.Context) error {
		return store.LockScope(ctx, "folders:x:root")
	}))
}

func TestFolderRepository_SiblingUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	room := seedRoom(t, store)
	folders := NewFolderRepository(store)

	require.NoError(t, folders.Create(ctx, &dataroom.Folder{RoomID: room.ID, Name: "A", Path: "A"}))
	err := folders.Create(ctx, &dataroom.Folder{RoomID: room.ID, Name: "A", Path: "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// Case-sensitive
	assert.NoError(t, folders.Create(ctx, &dataroom.Folder{RoomID: room.ID, Name: "a", Path: "a"}))
}

func TestFolderRepository_SubtreeAndPaths(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	room := seedRoom(t, store)
	folders := NewFolderRepository(store)

	a := &dataroom.Folder{RoomID: room.ID, Name: "A", Path: "A"}
	require.NoError(t, folders.Create(ctx, a))
	b := &dataroom.Folder{RoomID: room.ID, Name: "B", ParentID: &a.ID, Path: "A/B"}
	require.NoError(t, folders.Create(ctx, b))
	c := &dataroom.Folder{RoomID: room.ID, Name: "C", ParentID: &b.ID, Path: "A/B/C"}
	require.NoError(t, folders.Create(ctx, c))

	ids, err := folders.ListSubtreeIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids)

	a.Name = "Z"
	a.Path = "Z"
	require.NoError(t, folders.Update(ctx, a))
	require.NoError(t, folders.RecomputeSubtreePaths(ctx, a.ID))

	got, err := folders.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Z/B/C", got.Path)
}

func TestRoomRepository_ListNewestFirstWithStats(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	rooms := NewRoomRepository(store)
	files := NewFileRepository(store)

	first := seedRoom(t, store)
	second := &dataroom.Room{Name: "Second", OwnerID: "user-1", CreatedAt: first.CreatedAt.Add(time.Second)}
	require.NoError(t, rooms.Create(ctx, second))
	require.NoError(t, rooms.Create(ctx, &dataroom.Room{Name: "Other", OwnerID: "user-2"}))

	require.NoError(t, files.Create(ctx, &dataroom.File{RoomID: first.ID, Name: "a.pdf", ContentRef: "r1"}))

	list, err := rooms.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, 1, list[1].Stats.TotalFiles)
}
