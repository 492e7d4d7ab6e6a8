// Package prompt renders the LLM prompts that ask for slide deck JSON.
package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// System is the system prompt shared by both tasks.
const System = "You are a presentation designer. You respond with a single JSON object " +
	"describing a slide deck, and nothing else. No commentary before or after the JSON."

// jsonContract spells out the response schema the repair pipeline expects.
const jsonContract = `The JSON object must have this shape:

{
    "title": "Presentation Title",
    "slides": [
        {
            "heading": "Slide Heading",
            "bullet_points": [
                "A first-level bullet point",
                [
                    "A nested bullet point",
                    "Another nested bullet point"
                ]
            ],
            "key_message": "One-line takeaway of this slide",
            "img_keywords": "a few, search keywords"
        }
    ]
}

Rules for bullet_points:
- Plain strings are first-level bullets. A nested array holds sub-bullets of
  the bullet before it.
- To describe a step-by-step process, begin every bullet of that slide with
  ">> " and mention "step-by-step" in the slide heading. Use 3 to 6 steps.
- To suggest an icon for a bullet, begin it with "[[icon name]] " followed by
  the text, e.g. "[[shield]] Secure by default". Use icons either for all
  bullets of a slide or for none.
- For a comparison slide, use exactly two objects instead of strings:
  {"heading": "Left column", "bullet_points": ["...", "..."]} and the same
  for the right column.
- Mark important phrases with **bold** or *italic*.

Aim for 7 to 10 slides. Keep bullets short, at most one sentence each.`

const initialText = `Create a slide deck on the topic below.

Topic:
{{.Topic}}
{{if .AdditionalInfo}}
Consider this additional information:
{{.AdditionalInfo}}
{{end}}
` + jsonContract + `

Respond with only the JSON object.`

const refinementText = `Revise the slide deck JSON below. The numbered list holds every
instruction given so far, oldest first; apply them all, with the later ones
taking precedence.

Instructions:
{{range $i, $ins := .Instructions}}{{inc $i}}. {{$ins}}
{{end}}
Previous content:
{{.PreviousContent}}
{{if .AdditionalInfo}}
Consider this additional information:
{{.AdditionalInfo}}
{{end}}
` + jsonContract + `

Respond with only the complete revised JSON object.`

var (
	initialTmpl = template.Must(template.New("initial").Parse(initialText))

	refinementTmpl = template.Must(template.New("refinement").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(refinementText))
)

// InitialData fills the first-draft prompt.
type InitialData struct {
	Topic          string
	AdditionalInfo string
}

// RefinementData fills the revision prompt.
type RefinementData struct {
	Instructions    []string // all user instructions so far, oldest first
	PreviousContent string   // the last accepted deck JSON
	AdditionalInfo  string
}

// Initial renders the prompt asking for a first draft.
func Initial(data InitialData) (string, error) {
	var sb strings.Builder
	if err := initialTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering initial prompt: %w", err)
	}
	return sb.String(), nil
}

// Refinement renders the prompt asking for a revision.
func Refinement(data RefinementData) (string, error) {
	var sb strings.Builder
	if err := refinementTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering refinement prompt: %w", err)
	}
	return sb.String(), nil
}
