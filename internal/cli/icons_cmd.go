package cli

import (
	"fmt"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newIconsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Browse the icon catalog",
	}

	cmd.AddCommand(newIconsListCmd(app))

	return cmd
}

func newIconsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List icons available for [[icon]] prefixes",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := app.Icons.Names()
			if len(names) == 0 {
				fmt.Println("No icons found. Drop PNG files into the icons directory (DECKBUILD_ICONS).")
				return nil
			}

			fmt.Println(formatter.Header(fmt.Sprintf("%d icons", len(names))))
			for _, n := range names {
				fmt.Println("  " + n)
			}
			return nil
		},
	}
}
