package deck

import (
	"regexp"
	"strings"

	"github.com/amrenholt/deckbuild/internal/schema"
)

// StepMarker is the literal prefix denoting a step in a sequential process.
const StepMarker = ">> "

var (
	slideNumberRe = regexp.MustCompile(`(?i)^slide\s+\d+:`)
	iconTagRe     = regexp.MustCompile(`^\[\[(.*?)\]\]`)
)

// Build normalizes a validated deck schema into the internal document
// representation and derives the layout kind of every slide. It is a pure
// transformation: slide order and bullet order are preserved, nothing is
// deduplicated, and there is no failure path beyond what validation already
// guaranteed.
func Build(parsed *schema.DeckSchema) (*Document, []Warning) {
	var warnings []Warning

	doc := &Document{
		Title:  strings.TrimSpace(parsed.Title),
		Slides: make([]Slide, 0, len(parsed.Slides)),
	}

	for i, s := range parsed.Slides {
		slide, ws := buildSlide(i, s)
		warnings = append(warnings, ws...)
		doc.Slides = append(doc.Slides, slide)
	}

	return doc, warnings
}

func buildSlide(index int, s schema.SlideSchema) (Slide, []Warning) {
	var warnings []Warning

	slide := Slide{
		Heading:       StripSlideNumber(s.Heading),
		KeyMessage:    s.KeyMessage,
		ImageKeywords: strings.TrimSpace(s.ImgKeywords),
	}

	for _, item := range s.BulletPoints {
		switch item.Kind {
		case schema.KindText:
			slide.Content = append(slide.Content, parseBullet(item.Text))

		case schema.KindGroup:
			if item.Flattened {
				warnings = append(warnings, Warnf(index, WarnGroupFlattened,
					"sub-list nested deeper than one level was flattened"))
			}
			group := BulletGroup{Items: make([]TextBullet, 0, len(item.Group))}
			for _, text := range item.Group {
				group.Items = append(group.Items, parseBullet(text))
			}
			slide.Content = append(slide.Content, group)

		case schema.KindColumn:
			if item.Flattened {
				warnings = append(warnings, Warnf(index, WarnGroupFlattened,
					"nested sub-list inside a column was flattened"))
			}
			col := Column{Heading: strings.TrimSpace(item.Column.Heading)}
			for _, text := range item.Column.BulletPoints {
				col.Items = append(col.Items, parseBullet(text))
			}
			slide.Content = append(slide.Content, col)

		default:
			warnings = append(warnings, Warnf(index, WarnBulletDropped,
				"bullet element is neither a string, a list, nor a column object"))
		}
	}

	if demoted := demoteStrayColumns(&slide); demoted {
		warnings = append(warnings, Warnf(index, WarnLayoutFallback,
			"column object outside a two-column pair was demoted to a sub-list"))
	}

	normalizeStepSlide(&slide)
	slide.Layout = deriveLayout(slide)

	return slide, warnings
}

// parseBullet extracts the step marker and icon tag from a bullet string.
// Both prefixes are removed from the stored text.
func parseBullet(text string) TextBullet {
	b := TextBullet{}

	if strings.HasPrefix(text, StepMarker) {
		b.Step = true
		text = strings.TrimPrefix(text, StepMarker)
		text = strings.TrimLeft(text, " ")
	}

	if m := iconTagRe.FindStringSubmatch(text); m != nil {
		b.Icon = strings.TrimSpace(m[1])
		text = text[len(m[0]):]
	}

	b.Text = strings.TrimSpace(text)
	return b
}

// StripSlideNumber removes a literal "Slide N:" prefix that models sometimes
// prepend to headings.
func StripSlideNumber(heading string) string {
	if slideNumberRe.MatchString(heading) {
		idx := strings.Index(heading, ":")
		heading = heading[idx+1:]
	}
	return strings.TrimSpace(heading)
}

// demoteStrayColumns rewrites Column nodes on slides that are not an exact
// two-column pair. A column is only meaningful as one of exactly two
// top-level columns; anywhere else it becomes a heading bullet followed by
// its items as a sub-list.
func demoteStrayColumns(s *Slide) bool {
	if isTwoColumn(s.Content) {
		return false
	}

	demoted := false
	var out []ContentNode
	for _, node := range s.Content {
		col, ok := node.(Column)
		if !ok {
			out = append(out, node)
			continue
		}
		demoted = true
		if col.Heading != "" {
			out = append(out, TextBullet{Text: col.Heading})
		}
		if len(col.Items) > 0 {
			out = append(out, BulletGroup{Items: col.Items})
		}
	}
	if demoted {
		s.Content = out
	}
	return demoted
}

// normalizeStepSlide tags the remaining bullets of a mostly-marked process
// slide. Models occasionally omit the ">> " marker on one or two steps of a
// slide whose heading announces a step-by-step process; after normalization
// the all-marked invariant holds.
func normalizeStepSlide(s *Slide) {
	heading := strings.ToLower(s.Heading)
	if !strings.Contains(heading, "step-by-step") && !strings.Contains(heading, "step by step") {
		return
	}

	total, marked := 0, 0
	for _, node := range s.Content {
		b, ok := node.(TextBullet)
		if !ok {
			return
		}
		total++
		if b.Step {
			marked++
		}
	}
	if total == 0 || marked == 0 || float64(marked)/float64(total) < 0.75 {
		return
	}

	for i, node := range s.Content {
		b := node.(TextBullet)
		b.Step = true
		s.Content[i] = b
	}
}

func deriveLayout(s Slide) LayoutKind {
	if isTwoColumn(s.Content) {
		return LayoutTwoColumn
	}
	if allBullets(s.Content, func(b TextBullet) bool { return b.Icon != "" }) {
		return LayoutIconGrid
	}
	if allBullets(s.Content, func(b TextBullet) bool { return b.Step }) {
		return LayoutStepSequence
	}
	return LayoutStandard
}

// isTwoColumn reports whether the top-level content is exactly two Column
// nodes and nothing else.
func isTwoColumn(content []ContentNode) bool {
	if len(content) != 2 {
		return false
	}
	for _, node := range content {
		if _, ok := node.(Column); !ok {
			return false
		}
	}
	return true
}

// allBullets reports whether content is non-empty, consists solely of
// top-level TextBullet nodes, and every bullet satisfies pred.
func allBullets(content []ContentNode, pred func(TextBullet) bool) bool {
	if len(content) == 0 {
		return false
	}
	for _, node := range content {
		b, ok := node.(TextBullet)
		if !ok || !pred(b) {
			return false
		}
	}
	return true
}
