package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	"github.com/amrenholt/deckbuild/internal/history"
	"github.com/spf13/cobra"
)

func newThreadsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threads",
		Short: "Manage generation threads",
	}

	cmd.AddCommand(
		newThreadsListCmd(app),
		newThreadsDeleteCmd(app),
	)

	return cmd
}

func newThreadsListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			threads, err := app.Store.ListThreads(context.Background(), limit)
			if err != nil {
				return err
			}

			if len(threads) == 0 {
				fmt.Println("No threads yet. Create one with \"deckbuild generate\".")
				return nil
			}

			headers := []string{"ID", "Topic", "Template", "Updated"}
			rows := make([][]string, 0, len(threads))
			for _, t := range threads {
				tpl := t.TemplatePath
				if tpl == "" {
					tpl = formatter.Dim("starter")
				}
				rows = append(rows, []string{
					formatter.TruncID(t.ID),
					formatter.Truncate(t.Topic, 48),
					tpl,
					formatter.HumanTimestamp(t.UpdatedAt),
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of threads to show")

	return cmd
}

func newThreadsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete THREAD_ID",
		Short: "Delete a thread and its conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveThreadID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteThread(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted thread %s\n", id)
			return nil
		},
	}
}

// resolveThreadID accepts a full thread ID or an unambiguous prefix, as
// printed by "threads list".
func resolveThreadID(ctx context.Context, app *App, arg string) (string, error) {
	if _, err := app.Store.GetThread(ctx, arg); err == nil {
		return arg, nil
	} else if !errors.Is(err, history.ErrNotFound) {
		return "", err
	}

	threads, err := app.Store.ListThreads(ctx, 0)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range threads {
		if len(arg) > 0 && len(t.ID) >= len(arg) && t.ID[:len(arg)] == arg {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no thread matching %q", arg)
	default:
		return "", fmt.Errorf("thread prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}
