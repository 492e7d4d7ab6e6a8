package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// LayoutBadge returns a colored label for a slide layout kind.
func LayoutBadge(kind deck.LayoutKind) string {
	switch kind {
	case deck.LayoutStandard:
		return StyleBlue.Render("standard")
	case deck.LayoutTwoColumn:
		return StylePurple.Render("two-column")
	case deck.LayoutIconGrid:
		return StyleGreen.Render("icon grid")
	case deck.LayoutStepSequence:
		return StyleYellow.Render("steps")
	default:
		return StyleDim.Render(string(kind))
	}
}

// WarningLine renders one pipeline warning for terminal output.
func WarningLine(w deck.Warning) string {
	loc := "deck"
	if w.Slide >= 0 {
		loc = fmt.Sprintf("slide %d", w.Slide+1)
	}
	return fmt.Sprintf("%s %s %s",
		StyleYellow.Render("▲"),
		StyleBold.Render(loc),
		StyleFg.Render(w.Message))
}

// WarningSummary renders all warnings under a short header, or a dim
// "no warnings" line when the slice is empty.
func WarningSummary(warnings []deck.Warning) string {
	if len(warnings) == 0 {
		return Dim("No warnings.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleYellow.Render(fmt.Sprintf("%d warning(s):", len(warnings))))
	for _, w := range warnings {
		b.WriteString("  " + WarningLine(w) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DeckSummary renders a one-line description of a generated deck.
func DeckSummary(path string, slides int) string {
	return fmt.Sprintf("%s %s %s",
		StyleGreen.Render("✔"),
		Bold(path),
		Dim(fmt.Sprintf("(%d slides)", slides)))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
