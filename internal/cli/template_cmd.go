package cli

import (
	"fmt"
	"strconv"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	"github.com/amrenholt/deckbuild/internal/layout"
	"github.com/amrenholt/deckbuild/internal/pptx"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with presentation templates",
	}

	cmd.AddCommand(
		newTemplateExportCmd(app),
		newTemplateInspectCmd(app),
	)

	return cmd
}

func newTemplateExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export PATH",
		Short: "Write the built-in starter template to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pptx.WriteStarterTemplate(args[0]); err != nil {
				return err
			}
			fmt.Printf("Wrote starter template to %s\n", args[0])
			return nil
		},
	}
}

func newTemplateInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATH",
		Short: "List a template's layouts and placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := pptx.OpenTemplate(args[0])
			if err != nil {
				return err
			}

			headers := []string{"#", "Name", "Title", "Bodies"}
			rows := make([][]string, 0, len(tpl.Layouts))
			for i := range tpl.Layouts {
				l := &tpl.Layouts[i]
				title := formatter.Dim("no")
				if l.HasTitle() {
					title = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(l.Index + 1),
					l.Name,
					title,
					strconv.Itoa(len(l.Bodies())),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))

			caps := layout.Analyze(tpl)
			if !caps.Usable() {
				fmt.Println(formatter.StyleRed.Render("No usable content layout: decks cannot be rendered with this template."))
			}
			return nil
		},
	}
}
