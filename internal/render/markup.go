// Package render turns a deck document into slides on a pptx presentation.
package render

import (
	"regexp"

	"github.com/amrenholt/deckbuild/internal/pptx"
)

// Bullet text carries lightweight markup: **bold** and *italic* spans.
var markupRe = regexp.MustCompile(`\*\*(.+?)\*\*|\*(.+?)\*`)

// runs splits text into formatted runs. Unmatched asterisks pass through as
// literal text.
func runs(text string, sizePt float64) []pptx.Run {
	var out []pptx.Run
	add := func(s string, bold, italic bool) {
		if s == "" {
			return
		}
		out = append(out, pptx.Run{Text: s, Bold: bold, Italic: italic, SizePt: sizePt})
	}

	last := 0
	for _, m := range markupRe.FindAllStringSubmatchIndex(text, -1) {
		add(text[last:m[0]], false, false)
		if m[2] >= 0 {
			add(text[m[2]:m[3]], true, false)
		} else {
			add(text[m[4]:m[5]], false, true)
		}
		last = m[1]
	}
	add(text[last:], false, false)

	if out == nil {
		out = []pptx.Run{{Text: "", SizePt: sizePt}}
	}
	return out
}

// para builds one paragraph of marked-up text at the given indent level.
func para(text string, level int, sizePt float64) pptx.Paragraph {
	return pptx.Paragraph{Runs: runs(text, sizePt), Level: level}
}
