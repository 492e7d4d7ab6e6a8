package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	"github.com/amrenholt/deckbuild/internal/history"
	"github.com/amrenholt/deckbuild/internal/service"
	"github.com/spf13/cobra"
)

func newReviseCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "revise THREAD_ID INSTRUCTIONS...",
		Short: "Revise a previously generated deck",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			threadID := args[0]
			instructions := strings.Join(args[1:], " ")

			thread, err := app.Store.GetThread(ctx, threadID)
			if err != nil {
				if errors.Is(err, history.ErrNotFound) {
					return fmt.Errorf("no thread %s; see \"deckbuild threads list\"", threadID)
				}
				return err
			}

			if outPath == "" {
				outPath = slugify(thread.Topic) + ".pptx"
			}

			if !app.Client.Available(ctx) {
				return fmt.Errorf("ollama is not reachable; start it or set DECKBUILD_LLM_ENDPOINT")
			}

			if app.IsInteractive() {
				stop := formatter.StartSpinner("Revising deck for " + thread.Topic)
				defer stop()
			}

			// Decks are revised against the template they were created with.
			res, err := app.decks(thread.TemplatePath).Revise(ctx, threadID, instructions, outPath)
			if err != nil {
				if errors.Is(err, service.ErrHistoryFull) {
					return fmt.Errorf("%w; start over with \"deckbuild generate\" or reset the thread", err)
				}
				return describeGenerateError(err)
			}

			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output .pptx path (default derived from the topic)")

	return cmd
}
