package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrenholt/deckbuild/internal/schema"
)

func text(s string) schema.BulletItem {
	return schema.BulletItem{Kind: schema.KindText, Text: s}
}

func group(items ...string) schema.BulletItem {
	return schema.BulletItem{Kind: schema.KindGroup, Group: items}
}

func column(heading string, items ...string) schema.BulletItem {
	return schema.BulletItem{
		Kind:   schema.KindColumn,
		Column: &schema.ColumnSchema{Heading: heading, BulletPoints: items},
	}
}

func buildOne(t *testing.T, bullets ...schema.BulletItem) (Slide, []Warning) {
	t.Helper()
	doc, warns := Build(&schema.DeckSchema{
		Title:  "T",
		Slides: []schema.SlideSchema{{Heading: "H", BulletPoints: bullets}},
	})
	require.Len(t, doc.Slides, 1)
	return doc.Slides[0], warns
}

func TestBuildMixedContent(t *testing.T) {
	slide, warns := buildOne(t, text("a"), group("b", "c"), text("d"))
	assert.Empty(t, warns)
	assert.Equal(t, LayoutStandard, slide.Layout)
	require.Len(t, slide.Content, 3)
	assert.Equal(t, TextBullet{Text: "a"}, slide.Content[0])
	assert.Equal(t, BulletGroup{Items: []TextBullet{{Text: "b"}, {Text: "c"}}}, slide.Content[1])
	assert.Equal(t, TextBullet{Text: "d"}, slide.Content[2])
}

func TestParseBullet(t *testing.T) {
	tests := []struct {
		in   string
		want TextBullet
	}{
		{"plain text", TextBullet{Text: "plain text"}},
		{">> Step 1", TextBullet{Text: "Step 1", Step: true}},
		{">>   extra spaces", TextBullet{Text: "extra spaces", Step: true}},
		{"[[rocket]] Launch fast", TextBullet{Text: "Launch fast", Icon: "rocket"}},
		{"[[ rocket ]] padded tag", TextBullet{Text: "padded tag", Icon: "rocket"}},
		{">> [[gear]] marked and tagged", TextBullet{Text: "marked and tagged", Icon: "gear", Step: true}},
		{"[[chart]] first line\nsecond line", TextBullet{Text: "first line\nsecond line", Icon: "chart"}},
		{"[[chart]]\nbelow the tag", TextBullet{Text: "below the tag", Icon: "chart"}},
		{"a [[not-a-tag]] mid-string", TextBullet{Text: "a [[not-a-tag]] mid-string"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBullet(tt.in), tt.in)
	}
}

func TestStripSlideNumber(t *testing.T) {
	assert.Equal(t, "Intro", StripSlideNumber("Slide 1: Intro"))
	assert.Equal(t, "Intro", StripSlideNumber("slide 12:   Intro"))
	assert.Equal(t, "Slide count: 3", StripSlideNumber("Slide count: 3"))
	assert.Equal(t, "Plain", StripSlideNumber("Plain"))
}

func TestLayoutDerivation(t *testing.T) {
	tests := []struct {
		name    string
		bullets []schema.BulletItem
		want    LayoutKind
	}{
		{"plain bullets", []schema.BulletItem{text("a"), text("b")}, LayoutStandard},
		{"all steps", []schema.BulletItem{text(">> a"), text(">> b"), text(">> c")}, LayoutStepSequence},
		{"mixed steps", []schema.BulletItem{text(">> a"), text("b")}, LayoutStandard},
		{"all icons", []schema.BulletItem{text("[[a]] x"), text("[[b]] y")}, LayoutIconGrid},
		{"mixed icons", []schema.BulletItem{text("[[a]] x"), text("y")}, LayoutStandard},
		{"two columns", []schema.BulletItem{column("L", "x"), column("R", "y")}, LayoutTwoColumn},
		{"group breaks steps", []schema.BulletItem{text(">> a"), group(">> b")}, LayoutStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slide, _ := buildOne(t, tt.bullets...)
			assert.Equal(t, tt.want, slide.Layout)
		})
	}
}

func TestTwoColumnSlide(t *testing.T) {
	slide, warns := buildOne(t, column("Left", "x1", "x2"), column("Right", "y1"))
	assert.Empty(t, warns)
	assert.Equal(t, LayoutTwoColumn, slide.Layout)
	left := slide.Content[0].(Column)
	assert.Equal(t, "Left", left.Heading)
	assert.Equal(t, []TextBullet{{Text: "x1"}, {Text: "x2"}}, left.Items)
}

func TestStrayColumnDemoted(t *testing.T) {
	slide, warns := buildOne(t, text("a"), column("Extra", "x1", "x2"))
	assert.Equal(t, LayoutStandard, slide.Layout)

	require.Len(t, warns, 1)
	assert.Equal(t, WarnLayoutFallback, warns[0].Code)

	require.Len(t, slide.Content, 3)
	assert.Equal(t, TextBullet{Text: "a"}, slide.Content[0])
	assert.Equal(t, TextBullet{Text: "Extra"}, slide.Content[1])
	assert.Equal(t, BulletGroup{Items: []TextBullet{{Text: "x1"}, {Text: "x2"}}}, slide.Content[2])
}

func TestThreeColumnsDemoted(t *testing.T) {
	slide, warns := buildOne(t, column("A", "x"), column("B", "y"), column("C", "z"))
	assert.Equal(t, LayoutStandard, slide.Layout)
	assert.Len(t, warns, 1)
	assert.Len(t, slide.Content, 6)
}

func TestStepNormalizationByHeading(t *testing.T) {
	doc, _ := Build(&schema.DeckSchema{
		Title: "T",
		Slides: []schema.SlideSchema{{
			Heading: "Step-by-Step Onboarding",
			BulletPoints: []schema.BulletItem{
				text(">> a"), text(">> b"), text(">> c"), text("forgot marker"),
			},
		}},
	})
	slide := doc.Slides[0]
	assert.Equal(t, LayoutStepSequence, slide.Layout)
	for _, node := range slide.Content {
		assert.True(t, node.(TextBullet).Step)
	}
}

func TestStepNormalizationNeedsMajority(t *testing.T) {
	doc, _ := Build(&schema.DeckSchema{
		Title: "T",
		Slides: []schema.SlideSchema{{
			Heading: "Step by step guide",
			BulletPoints: []schema.BulletItem{
				text(">> a"), text("b"), text("c"), text("d"),
			},
		}},
	})
	assert.Equal(t, LayoutStandard, doc.Slides[0].Layout)
}

func TestInvalidBulletDropped(t *testing.T) {
	slide, warns := buildOne(t, text("a"), schema.BulletItem{Kind: schema.KindInvalid})
	require.Len(t, warns, 1)
	assert.Equal(t, WarnBulletDropped, warns[0].Code)
	assert.Len(t, slide.Content, 1)
}

func TestFlattenedGroupWarns(t *testing.T) {
	_, warns := buildOne(t, schema.BulletItem{
		Kind: schema.KindGroup, Group: []string{"a", "b"}, Flattened: true,
	})
	require.Len(t, warns, 1)
	assert.Equal(t, WarnGroupFlattened, warns[0].Code)
}

func TestBuildPreservesSlideMetadata(t *testing.T) {
	doc, _ := Build(&schema.DeckSchema{
		Title: "  Deck Title  ",
		Slides: []schema.SlideSchema{{
			Heading:      "Slide 2: Metadata",
			BulletPoints: []schema.BulletItem{text("a")},
			KeyMessage:   "remember this",
			ImgKeywords:  " cloud, server ",
		}},
	})
	assert.Equal(t, "Deck Title", doc.Title)
	slide := doc.Slides[0]
	assert.Equal(t, "Metadata", slide.Heading)
	assert.Equal(t, "remember this", slide.KeyMessage)
	assert.Equal(t, "cloud, server", slide.ImageKeywords)
}

func TestWarningString(t *testing.T) {
	assert.Equal(t, "slide 3: unknown_icon: no glyph",
		Warnf(2, WarnUnknownIcon, "no glyph").String())
	assert.Equal(t, "slide_dropped: gone",
		Warnf(-1, WarnSlideDropped, "gone").String())
}
