package layout

import (
	"errors"
	"fmt"

	"github.com/amrenholt/deckbuild/internal/deck"
)

// ErrNoUsableLayout means the template offers no layout content slides can
// render into.
var ErrNoUsableLayout = errors.New("template has no usable content layout")

// Plan is the rendering decision for one slide: which template layout to
// bind, the effective layout kind after any fallback, and how the text fits.
type Plan struct {
	Kind        deck.LayoutKind
	LayoutIndex int
	FontPt      float64 // body text size after shrink-to-fit
	MaxBullets  int     // paragraphs kept before overflow drop; -1 keeps all
	ColumnItems []int   // items kept per column on two-column slides; nil keeps all
	Fallback    bool    // Kind differs from what the content asked for
}

// Select plans one slide against the template's capabilities. index is the
// slide's position in the deck, used for warning attribution. The returned
// warnings cover layout fallbacks and text fitting; the only error is
// ErrNoUsableLayout.
func Select(index int, sl *deck.Slide, caps Capabilities, pol Policy) (Plan, []deck.Warning, error) {
	if !caps.Usable() {
		return Plan{}, nil, ErrNoUsableLayout
	}

	var warns []deck.Warning
	kind := sl.Layout
	fallback := false

	switch kind {
	case deck.LayoutTwoColumn:
		if caps.TwoContent >= 0 {
			plan := fitTwoColumn(index, sl, pol, &warns)
			plan.Kind = kind
			plan.LayoutIndex = caps.TwoContent
			return plan, warns, nil
		}
		warns = append(warns, deck.Warnf(index, deck.WarnLayoutFallback,
			"template has no two-column layout, rendering as a single list"))
		kind = deck.LayoutStandard
		fallback = true

	case deck.LayoutIconGrid:
		return Plan{Kind: kind, LayoutIndex: canvasLayout(caps), FontPt: pol.BaseFontPt, MaxBullets: -1}, nil, nil

	case deck.LayoutStepSequence:
		steps := len(sl.Content)
		if steps >= 3 && steps <= pol.MaxShapes {
			return Plan{Kind: kind, LayoutIndex: canvasLayout(caps), FontPt: pol.BaseFontPt, MaxBullets: -1}, nil, nil
		}
		warns = append(warns, deck.Warnf(index, deck.WarnLayoutFallback,
			"%d steps cannot be drawn as shapes, rendering as a numbered list", steps))
		kind = deck.LayoutStandard
		fallback = true
	}

	plan := fitStandard(index, sl, pol, &warns)
	plan.Kind = kind
	plan.Fallback = fallback
	plan.LayoutIndex = caps.Content
	if plan.LayoutIndex < 0 {
		plan.LayoutIndex = caps.TitleOnly
	}
	return plan, warns, nil
}

// canvasLayout picks the layout whose body area the renderer draws shapes
// over, preferring a free canvas.
func canvasLayout(caps Capabilities) int {
	if caps.TitleOnly >= 0 {
		return caps.TitleOnly
	}
	return caps.Content
}

// fitStandard shrinks the body font until the slide's paragraphs fit, then
// drops trailing paragraphs if the floor is reached while still overflowing.
func fitStandard(index int, sl *deck.Slide, pol Policy, warns *[]deck.Warning) Plan {
	font := pol.BaseFontPt
	for totalLines(sl, pol, font) > capacityAt(pol, font) && font-pol.FontStepPt >= pol.MinFontPt {
		font -= pol.FontStepPt
	}
	if font < pol.BaseFontPt {
		*warns = append(*warns, deck.Warnf(index, deck.WarnFontReduced,
			"body text reduced from %gpt to %gpt to fit", pol.BaseFontPt, font))
	}

	maxBullets := -1
	if lines := paragraphLines(sl, charsAt(pol, font)); sum(lines) > capacityAt(pol, font) {
		capacity := capacityAt(pol, font)
		used, keep := 0, 0
		for _, n := range lines {
			if used+n > capacity {
				break
			}
			used += n
			keep++
		}
		if keep < 1 {
			keep = 1
		}
		maxBullets = keep
		*warns = append(*warns, deck.Warnf(index, deck.WarnOverflowDrop,
			"dropped %d trailing bullet(s) that did not fit", len(lines)-keep))
	}

	return Plan{FontPt: font, MaxBullets: maxBullets}
}

// fitTwoColumn shrinks the body font until the fullest column fits its
// half-width placeholder, then caps each column's items if the font floor is
// reached while a column still overflows.
func fitTwoColumn(index int, sl *deck.Slide, pol Policy, warns *[]deck.Warning) Plan {
	cols := columnNodes(sl)

	font := pol.BaseFontPt
	for maxColumnLines(cols, pol, font) > capacityAt(pol, font) && font-pol.FontStepPt >= pol.MinFontPt {
		font -= pol.FontStepPt
	}
	if font < pol.BaseFontPt {
		*warns = append(*warns, deck.Warnf(index, deck.WarnFontReduced,
			"body text reduced from %gpt to %gpt to fit", pol.BaseFontPt, font))
	}

	capacity := capacityAt(pol, font)
	chars := columnCharsAt(pol, font)
	keeps := make([]int, len(cols))
	dropped := 0
	for i, col := range cols {
		lines := columnLines(col, chars)
		used, keep := lines[0], 0
		for _, n := range lines[1:] {
			if used+n > capacity {
				break
			}
			used += n
			keep++
		}
		if keep < 1 && len(col.Items) > 0 {
			keep = 1
		}
		keeps[i] = keep
		dropped += len(col.Items) - keep
	}
	if dropped == 0 {
		keeps = nil
	} else {
		*warns = append(*warns, deck.Warnf(index, deck.WarnOverflowDrop,
			"dropped %d bullet(s) that did not fit the columns", dropped))
	}

	return Plan{FontPt: font, MaxBullets: -1, ColumnItems: keeps}
}

// columnCharsAt halves the wrap width: two-column bodies sit side by side.
func columnCharsAt(pol Policy, font float64) int {
	return charsAt(pol, font) / 2
}

// columnLines estimates the wrapped line counts within one column, heading
// first and then each item at one indent level.
func columnLines(col deck.Column, chars int) []int {
	lines := []int{wrapLines(col.Heading, chars)}
	for _, item := range col.Items {
		lines = append(lines, wrapLines(item.Text, chars-6))
	}
	return lines
}

func maxColumnLines(cols []deck.Column, pol Policy, font float64) int {
	most := 0
	for _, col := range cols {
		if n := sum(columnLines(col, columnCharsAt(pol, font))); n > most {
			most = n
		}
	}
	return most
}

func columnNodes(sl *deck.Slide) []deck.Column {
	var cols []deck.Column
	for _, node := range sl.Content {
		if col, ok := node.(deck.Column); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// charsAt scales the wrap width with the font: smaller text fits more
// characters per line.
func charsAt(pol Policy, font float64) int {
	return int(float64(pol.LineChars) * pol.BaseFontPt / font)
}

// capacityAt scales the line budget the same way.
func capacityAt(pol Policy, font float64) int {
	return int(float64(pol.MaxLines) * pol.BaseFontPt / font)
}

func totalLines(sl *deck.Slide, pol Policy, font float64) int {
	return sum(paragraphLines(sl, charsAt(pol, font)))
}

// paragraphLines estimates the wrapped line count of each paragraph the
// slide will render, in render order. Indented paragraphs wrap earlier.
func paragraphLines(sl *deck.Slide, chars int) []int {
	var out []int
	add := func(text string, level int) {
		out = append(out, wrapLines(text, chars-6*level))
	}

	for _, node := range sl.Content {
		switch n := node.(type) {
		case deck.TextBullet:
			add(n.Text, 0)
		case deck.BulletGroup:
			for _, item := range n.Items {
				add(item.Text, 1)
			}
		case deck.Column:
			add(n.Heading, 0)
			for _, item := range n.Items {
				add(item.Text, 1)
			}
		}
	}
	return out
}

// wrapLines estimates how many lines text occupies at the given wrap width.
func wrapLines(text string, width int) int {
	if width < 16 {
		width = 16
	}
	n := (len([]rune(text)) + width - 1) / width
	if n < 1 {
		n = 1
	}
	return n
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

// Describe formats a plan for log output.
func (p Plan) Describe() string {
	return fmt.Sprintf("%s layout=%d font=%gpt", p.Kind, p.LayoutIndex, p.FontPt)
}
