package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	"github.com/amrenholt/deckbuild/internal/llm"
	"github.com/amrenholt/deckbuild/internal/service"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var outPath, templatePath, info, infoFile, fromJSON string

	cmd := &cobra.Command{
		Use:   "generate TOPIC",
		Short: "Generate a new deck for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topic := strings.Join(args, " ")

			if outPath == "" {
				outPath = slugify(topic) + ".pptx"
			}
			if infoFile != "" {
				data, err := os.ReadFile(infoFile)
				if err != nil {
					return fmt.Errorf("read info file: %w", err)
				}
				info = strings.TrimSpace(string(data))
			}

			decks := app.decks(templatePath)

			if fromJSON != "" {
				raw, err := os.ReadFile(fromJSON)
				if err != nil {
					return fmt.Errorf("read json file: %w", err)
				}
				res, err := decks.GenerateFromJSON(string(raw), outPath)
				if err != nil {
					return err
				}
				printResult(res)
				return nil
			}

			if !app.Client.Available(ctx) {
				return fmt.Errorf("ollama is not reachable; start it or set DECKBUILD_LLM_ENDPOINT")
			}

			if app.IsInteractive() {
				stop := formatter.StartSpinner("Generating deck for " + topic)
				defer stop()
			}

			res, err := decks.Generate(ctx, topic, info, outPath)
			if err != nil {
				return describeGenerateError(err)
			}

			printResult(res)
			fmt.Printf("%s deckbuild revise %s \"...\"\n",
				formatter.Dim("Revise with:"), res.ThreadID)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output .pptx path (default derived from the topic)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Template .pptx to build on")
	cmd.Flags().StringVar(&info, "info", "", "Extra context to steer the content")
	cmd.Flags().StringVar(&infoFile, "info-file", "", "File with extra context to steer the content")
	cmd.Flags().StringVar(&fromJSON, "from-json", "", "Render a saved LLM response instead of calling the model")

	return cmd
}

func printResult(res *service.Result) {
	fmt.Println(formatter.DeckSummary(res.Path, len(res.Document.Slides)))
	fmt.Println(formatter.WarningSummary(res.Warnings))
}

// describeGenerateError adds a usable hint to the errors users hit most.
func describeGenerateError(err error) error {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return fmt.Errorf("%w; raise DECKBUILD_LLM_TIMEOUT_MS or try a smaller model", err)
	case errors.Is(err, llm.ErrOllamaUnavailable):
		return fmt.Errorf("%w; start ollama or set DECKBUILD_LLM_ENDPOINT", err)
	default:
		return err
	}
}

// slugify derives a filesystem-friendly name from a topic.
func slugify(topic string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "deck"
	}
	if len(s) > 60 {
		s = strings.Trim(s[:60], "-")
	}
	return s
}
