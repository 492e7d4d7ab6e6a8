package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var templatePath, outDir string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Generate and revise a deck interactively",
		Long: `Start an interactive session. The first message is the deck topic;
every following message revises the deck. Each turn writes a new
versioned .pptx file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("chat needs an interactive terminal")
			}
			if !app.Client.Available(context.Background()) {
				return fmt.Errorf("ollama is not reachable; start it or set DECKBUILD_LLM_ENDPOINT")
			}

			choices := discoverTemplates(app.TemplatesDir)
			model := newChatModel(app, templatePath, outDir, choices)

			_, err := tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "Template .pptx to build on (skips the picker)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for generated decks")

	return cmd
}

// discoverTemplates lists .pptx files in dir, sorted by name. A missing or
// unreadable directory yields no choices.
func discoverTemplates(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pptx") {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// deckbuildHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func deckbuildHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
