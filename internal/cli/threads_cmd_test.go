package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadsListEmpty(t *testing.T) {
	app := testApp(t, &stubClient{})

	output, err := runCommand(t, app, "threads", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No threads yet")
}

func TestThreadsListAndDelete(t *testing.T) {
	app := testApp(t, &stubClient{})
	ctx := context.Background()

	thread, err := app.Store.CreateThread(ctx, "quantum computing", "")
	require.NoError(t, err)

	output, err := runCommand(t, app, "threads", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "quantum computing")
	assert.Contains(t, output, thread.ID[:8])

	// Delete by unambiguous prefix.
	output, err = runCommand(t, app, "threads", "delete", thread.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted thread")

	threads, err := app.Store.ListThreads(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, threads)
}

func TestThreadsDeleteUnknown(t *testing.T) {
	app := testApp(t, &stubClient{})

	_, err := runCommand(t, app, "threads", "delete", "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no thread matching")
}
