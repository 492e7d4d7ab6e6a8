package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amrenholt/deckbuild/internal/history"
	"github.com/amrenholt/deckbuild/internal/icons"
	"github.com/amrenholt/deckbuild/internal/llm"
)

const testDeckJSON = `{
	"title": "Go Concurrency",
	"slides": [
		{
			"heading": "Goroutines",
			"bullet_points": ["Lightweight threads", "Managed by the runtime"]
		},
		{
			"heading": "Channels",
			"bullet_points": ["Typed conduits", "Block until both sides are ready"]
		}
	]
}`

// stubClient returns canned responses and records the requests it saw.
type stubClient struct {
	responses []string
	calls     []llm.ChatRequest
	err       error
}

func (c *stubClient) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	c.calls = append(c.calls, req)
	if c.err != nil {
		return nil, c.err
	}
	text := c.responses[0]
	if len(c.responses) > 1 {
		c.responses = c.responses[1:]
	}
	return &llm.ChatResponse{Text: text, Model: "stub"}, nil
}

func (c *stubClient) Available(context.Context) bool { return c.err == nil }

func testApp(t *testing.T, client llm.Client) *App {
	t.Helper()
	db, err := history.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cat, err := icons.Load("")
	require.NoError(t, err)

	return &App{
		Client:        client,
		Store:         history.NewStore(db),
		Icons:         cat,
		IsInteractive: func() bool { return false },
		Version:       "test",
	}
}

// runCommand executes args through the Cobra tree, capturing os.Stdout so
// direct fmt.Print calls from handlers are included.
func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw

	root := NewRootCmd(app)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	var buf strings.Builder
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, pr)
		close(done)
	}()

	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), execErr
}
