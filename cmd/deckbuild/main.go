package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amrenholt/deckbuild/internal/cli"
	"github.com/amrenholt/deckbuild/internal/history"
	"github.com/amrenholt/deckbuild/internal/icons"
	"github.com/amrenholt/deckbuild/internal/layout"
	"github.com/amrenholt/deckbuild/internal/llm"
	"github.com/mattn/go-isatty"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.deckbuild/deckbuild.db
	dbPath := os.Getenv("DECKBUILD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".deckbuild", "deckbuild.db")
	}

	iconsDir, err := configDir("DECKBUILD_ICONS", "icons")
	if err != nil {
		return err
	}
	templatesDir, err := configDir("DECKBUILD_TEMPLATES", "templates")
	if err != nil {
		return err
	}

	database, err := history.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	catalog, err := icons.Load(iconsDir)
	if err != nil {
		return fmt.Errorf("loading icon catalog: %w", err)
	}

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}

	app := &cli.App{
		Client:       llm.NewOllamaClient(llmCfg, observer),
		Store:        history.NewStore(database),
		Icons:        catalog,
		Policy:       layout.LoadPolicy(),
		TemplatePath: os.Getenv("DECKBUILD_TEMPLATE"),
		TemplatesDir: templatesDir,
		Version:      version,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// configDir resolves a data directory: the env var when set, otherwise
// ~/.deckbuild/<name>. The directory is not created; callers treat a missing
// directory as empty.
func configDir(env, name string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".deckbuild", name), nil
}
