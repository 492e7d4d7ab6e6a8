package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const revisedDeckJSON = `{
	"title": "Go Concurrency",
	"slides": [
		{
			"heading": "Goroutines",
			"bullet_points": ["Lightweight threads", "Managed by the runtime"]
		},
		{
			"heading": "Channels",
			"bullet_points": ["Typed conduits", "Block until both sides are ready"]
		},
		{
			"heading": "Select",
			"bullet_points": ["Waits on multiple channels"]
		}
	]
}`

func TestReviseCmd(t *testing.T) {
	client := &stubClient{responses: []string{testDeckJSON, revisedDeckJSON}}
	app := testApp(t, client)
	dir := t.TempDir()

	_, err := runCommand(t, app, "generate", "go concurrency",
		"--out", filepath.Join(dir, "v1.pptx"))
	require.NoError(t, err)

	threads, err := app.Store.ListThreads(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, threads, 1)

	out := filepath.Join(dir, "v2.pptx")
	output, err := runCommand(t, app, "revise", threads[0].ID,
		"add", "a", "slide", "on", "select", "--out", out)
	require.NoError(t, err)

	assert.FileExists(t, out)
	assert.Contains(t, output, "3 slides")

	// The revision prompt numbers the accumulated instructions.
	last := client.calls[len(client.calls)-1]
	prompt := last.Messages[len(last.Messages)-1].Content
	assert.Contains(t, prompt, "add a slide on select")
}

func TestReviseCmdUnknownThread(t *testing.T) {
	app := testApp(t, &stubClient{responses: []string{testDeckJSON}})

	_, err := runCommand(t, app, "revise", "no-such-thread", "do something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no thread")
}
