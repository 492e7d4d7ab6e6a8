package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestOpenDBCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}

func TestThreadLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	created, err := store.CreateThread(ctx, "a deck about tea", "theme.pptx")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loaded, err := store.GetThread(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a deck about tea", loaded.Topic)
	assert.Equal(t, "theme.pptx", loaded.TemplatePath)
	assert.Empty(t, loaded.LastJSON)

	require.NoError(t, store.SetLastJSON(ctx, created.ID, `{"title":"Tea"}`))
	loaded, err = store.GetThread(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Tea"}`, loaded.LastJSON)

	require.NoError(t, store.DeleteThread(ctx, created.ID))
	_, err = store.GetThread(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetLastJSONMissingThread(t *testing.T) {
	store := testStore(t)
	err := store.SetLastJSON(context.Background(), "no-such-thread", "{}")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessagesOrderedBySeq(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	thread, err := store.CreateThread(ctx, "topic", "")
	require.NoError(t, err)

	first, err := store.AppendMessage(ctx, thread.ID, RoleUser, "topic")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Seq)

	second, err := store.AppendMessage(ctx, thread.ID, RoleAssistant, `{"title":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Seq)

	third, err := store.AppendMessage(ctx, thread.ID, RoleUser, "add a slide")
	require.NoError(t, err)
	assert.Equal(t, 3, third.Seq)

	messages, err := store.Messages(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Equal(t, "add a slide", messages[2].Content)

	count, err := store.CountMessages(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	users, err := store.UserMessages(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"topic", "add a slide"}, users)
}

func TestDeleteThreadCascadesMessages(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	thread, err := store.CreateThread(ctx, "topic", "")
	require.NoError(t, err)
	_, err = store.AppendMessage(ctx, thread.ID, RoleUser, "hello")
	require.NoError(t, err)

	require.NoError(t, store.DeleteThread(ctx, thread.ID))

	count, err := store.CountMessages(ctx, thread.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListThreadsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	older, err := store.CreateThread(ctx, "older", "")
	require.NoError(t, err)
	newer, err := store.CreateThread(ctx, "newer", "")
	require.NoError(t, err)

	// Touching the older thread bumps it above the newer one.
	require.NoError(t, store.SetLastJSON(ctx, older.ID, "{}"))

	threads, err := store.ListThreads(ctx, 10)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, older.ID, threads[0].ID)
	assert.Equal(t, newer.ID, threads[1].ID)
}
