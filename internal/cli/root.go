package cli

import (
	"github.com/amrenholt/deckbuild/internal/history"
	"github.com/amrenholt/deckbuild/internal/icons"
	"github.com/amrenholt/deckbuild/internal/layout"
	"github.com/amrenholt/deckbuild/internal/llm"
	"github.com/amrenholt/deckbuild/internal/service"
	"github.com/spf13/cobra"
)

// App holds the shared dependencies used by CLI commands.
type App struct {
	Client llm.Client
	Store  *history.Store
	Icons  *icons.Catalog
	Policy layout.Policy

	// TemplatePath is the default template; empty selects the built-in
	// starter template. Commands may override it with --template.
	TemplatePath string

	// TemplatesDir holds user template files offered by the chat picker.
	TemplatesDir string

	// IsInteractive reports whether stdin/stdout are attached to a TTY.
	IsInteractive func() bool

	Version string
}

// decks builds a DeckService bound to the given template path, falling back
// to the app default when the path is empty.
func (a *App) decks(templatePath string) *service.DeckService {
	if templatePath == "" {
		templatePath = a.TemplatePath
	}
	return service.NewDeckService(service.Config{
		Client:       a.Client,
		Store:        a.Store,
		TemplatePath: templatePath,
		IconCatalog:  a.Icons,
		Policy:       a.Policy,
	})
}

// NewRootCmd creates the top-level "deckbuild" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:     "deckbuild",
		Short:   "Generate PowerPoint decks from a topic with a local LLM",
		Version: app.Version,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newReviseCmd(app),
		newThreadsCmd(app),
		newTemplateCmd(app),
		newIconsCmd(app),
		newChatCmd(app),
	)

	return root
}
