package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/amrenholt/deckbuild/internal/icons"
	"github.com/amrenholt/deckbuild/internal/pptx"
)

func TestRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []pptx.Run
	}{
		{
			name: "plain text",
			in:   "no markup here",
			want: []pptx.Run{{Text: "no markup here", SizePt: 18}},
		},
		{
			name: "bold span",
			in:   "grew **12%** overall",
			want: []pptx.Run{
				{Text: "grew ", SizePt: 18},
				{Text: "12%", Bold: true, SizePt: 18},
				{Text: " overall", SizePt: 18},
			},
		},
		{
			name: "italic span",
			in:   "*caveat* applies",
			want: []pptx.Run{
				{Text: "caveat", Italic: true, SizePt: 18},
				{Text: " applies", SizePt: 18},
			},
		},
		{
			name: "mixed spans",
			in:   "**bold** and *italic*",
			want: []pptx.Run{
				{Text: "bold", Bold: true, SizePt: 18},
				{Text: " and ", SizePt: 18},
				{Text: "italic", Italic: true, SizePt: 18},
			},
		},
		{
			name: "empty text still yields a run",
			in:   "",
			want: []pptx.Run{{Text: "", SizePt: 18}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runs(tt.in, 18))
		})
	}
}

func testDocument() *deck.Document {
	return &deck.Document{
		Title: "Launch Readiness",
		Slides: []deck.Slide{
			{
				Heading: "Summary",
				Layout:  deck.LayoutStandard,
				Content: []deck.ContentNode{
					deck.TextBullet{Text: "Revenue grew **12%**"},
					deck.BulletGroup{Items: []deck.TextBullet{{Text: "EMEA led"}}},
				},
				KeyMessage: "On track for Q4",
			},
			{
				Heading: "Tradeoffs",
				Layout:  deck.LayoutTwoColumn,
				Content: []deck.ContentNode{
					deck.Column{Heading: "Pros", Items: []deck.TextBullet{{Text: "fast"}}},
					deck.Column{Heading: "Cons", Items: []deck.TextBullet{{Text: "risky"}}},
				},
			},
			{
				Heading: "Pillars",
				Layout:  deck.LayoutIconGrid,
				Content: []deck.ContentNode{
					deck.TextBullet{Text: "Secure", Icon: "shield"},
					deck.TextBullet{Text: "Fast", Icon: "missing-icon"},
				},
			},
			{
				Heading: "Rollout",
				Layout:  deck.LayoutStepSequence,
				Content: []deck.ContentNode{
					deck.TextBullet{Text: "Plan", Step: true},
					deck.TextBullet{Text: "Pilot", Step: true},
					deck.TextBullet{Text: "Launch", Step: true},
				},
			},
		},
	}
}

func assembleToParts(t *testing.T, doc *deck.Document, opts Options) map[string]string {
	t.Helper()

	tpl, err := pptx.StarterTemplate()
	require.NoError(t, err)

	pres, warns, err := Assemble(doc, tpl, opts)
	require.NoError(t, err)
	for _, w := range warns {
		t.Logf("warning: %s", w)
	}

	var buf bytes.Buffer
	require.NoError(t, pres.Write(&buf))
	return readZipParts(t, buf.Bytes())
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shield.png"), []byte{0x89, 'P', 'N', 'G'}, 0o644))
	cat, err := icons.Load(dir)
	require.NoError(t, err)

	parts := assembleToParts(t, testDocument(), Options{Icons: cat})

	// Cover, four content slides, closing.
	for i := 1; i <= 6; i++ {
		require.Contains(t, parts, fmt.Sprintf("ppt/slides/slide%d.xml", i))
	}
	assert.NotContains(t, parts, "ppt/slides/slide7.xml")

	assert.Contains(t, parts["ppt/slides/slide1.xml"], "Launch Readiness")
	assert.Contains(t, parts["ppt/slides/slide6.xml"], ClosingText)

	standard := parts["ppt/slides/slide2.xml"]
	assert.Contains(t, standard, "Summary")
	assert.Contains(t, standard, `b="1"`)
	assert.Contains(t, standard, "12%")
	assert.Contains(t, standard, `lvl="1"`)
	assert.Contains(t, standard, "On track for Q4")

	twoCol := parts["ppt/slides/slide3.xml"]
	assert.Contains(t, twoCol, "Pros")
	assert.Contains(t, twoCol, "Cons")
	assert.Contains(t, twoCol, `idx="2"`)

	grid := parts["ppt/slides/slide4.xml"]
	assert.Contains(t, grid, `prst="roundRect"`)
	assert.Contains(t, grid, "<p:pic>")
	assert.Contains(t, grid, "Secure")

	step := parts["ppt/slides/slide5.xml"]
	assert.Contains(t, step, `prst="chevron"`)
	assert.Contains(t, step, "Pilot")
}

func TestAssembleWarnsOnMissingIcon(t *testing.T) {
	tpl, err := pptx.StarterTemplate()
	require.NoError(t, err)

	doc := &deck.Document{
		Title: "Deck",
		Slides: []deck.Slide{{
			Heading: "Pillars",
			Layout:  deck.LayoutIconGrid,
			Content: []deck.ContentNode{
				deck.TextBullet{Text: "Fast", Icon: "nope"},
			},
		}},
	}

	_, warns, err := Assemble(doc, tpl, Options{})
	require.NoError(t, err)

	require.Len(t, warns, 1)
	assert.Equal(t, deck.WarnUnknownIcon, warns[0].Code)
	assert.Equal(t, 0, warns[0].Slide)
}

func TestAssembleStepFallbackNumbersTheList(t *testing.T) {
	doc := &deck.Document{
		Title: "Deck",
		Slides: []deck.Slide{{
			Heading: "Long process",
			Layout:  deck.LayoutStepSequence,
			Content: []deck.ContentNode{
				deck.TextBullet{Text: "one", Step: true},
				deck.TextBullet{Text: "two", Step: true},
				deck.TextBullet{Text: "three", Step: true},
				deck.TextBullet{Text: "four", Step: true},
				deck.TextBullet{Text: "five", Step: true},
				deck.TextBullet{Text: "six", Step: true},
				deck.TextBullet{Text: "seven", Step: true},
			},
		}},
	}

	parts := assembleToParts(t, doc, Options{})

	slide := parts["ppt/slides/slide2.xml"]
	assert.NotContains(t, slide, `prst="chevron"`)
	assert.NotContains(t, slide, `prst="homePlate"`)
	assert.Contains(t, slide, "1. one")
	assert.Contains(t, slide, "7. seven")
}

func TestAssembleStaircaseForFiveSteps(t *testing.T) {
	doc := &deck.Document{
		Title: "Deck",
		Slides: []deck.Slide{{
			Heading: "Process",
			Layout:  deck.LayoutStepSequence,
			Content: []deck.ContentNode{
				deck.TextBullet{Text: "one", Step: true},
				deck.TextBullet{Text: "two", Step: true},
				deck.TextBullet{Text: "three", Step: true},
				deck.TextBullet{Text: "four", Step: true},
				deck.TextBullet{Text: "five", Step: true},
			},
		}},
	}

	parts := assembleToParts(t, doc, Options{})
	assert.Contains(t, parts["ppt/slides/slide2.xml"], `prst="homePlate"`)
}

func TestAssembleTwoColumnFallback(t *testing.T) {
	// A document whose two-column slide mentions both columns even when the
	// plan demoted it renders everything into one body.
	doc := &deck.Document{
		Title: "Deck",
		Slides: []deck.Slide{{
			Heading: "Tradeoffs",
			Layout:  deck.LayoutStandard, // post-fallback shape
			Content: []deck.ContentNode{
				deck.Column{Heading: "Pros", Items: []deck.TextBullet{{Text: "fast"}}},
				deck.TextBullet{Text: "context"},
			},
		}},
	}

	parts := assembleToParts(t, doc, Options{})
	slide := parts["ppt/slides/slide2.xml"]
	assert.Contains(t, slide, "Pros")
	assert.Contains(t, slide, "fast")
	assert.Contains(t, slide, "context")
}

func readZipParts(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string, len(zr.File))
	for _, file := range zr.File {
		rc, err := file.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[file.Name] = string(content)
	}
	return parts
}

func TestClosingSlideUsesTitleOnlyLayout(t *testing.T) {
	parts := assembleToParts(t, &deck.Document{Title: "T", Slides: []deck.Slide{{
		Heading: "S",
		Layout:  deck.LayoutStandard,
		Content: []deck.ContentNode{deck.TextBullet{Text: "a"}},
	}}}, Options{})

	rels := parts["ppt/slides/_rels/slide3.xml.rels"]
	assert.Contains(t, rels, "slideLayout4.xml")
}

// titleOnlyTemplate builds an in-memory template whose single layout has a
// title placeholder and nothing else.
func titleOnlyTemplate(t *testing.T) *pptx.Template {
	t.Helper()

	parts := map[string]string{
		"ppt/presentation.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
			`<p:sldSz cx="12192000" cy="6858000"/></p:presentation>`,
		"ppt/slideLayouts/slideLayout1.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
			` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="titleOnly">` +
			`<p:cSld name="Title Only"><p:spTree>` +
			`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>` +
			`<p:spPr><a:xfrm><a:off x="838200" y="365125"/><a:ext cx="10515600" cy="1325563"/></a:xfrm></p:spPr></p:sp>` +
			`</p:spTree></p:cSld></p:sldLayout>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	tpl, err := pptx.TemplateFromBytes(buf.Bytes())
	require.NoError(t, err)
	return tpl
}

func TestAssembleTemplateWithOnlyTitleLayout(t *testing.T) {
	tpl := titleOnlyTemplate(t)

	doc := &deck.Document{
		Title: "Quarterly Review",
		Slides: []deck.Slide{{
			Heading: "Highlights",
			Layout:  deck.LayoutStandard,
			Content: []deck.ContentNode{deck.TextBullet{Text: "shipped on time"}},
		}},
	}

	pres, _, err := Assemble(doc, tpl, Options{})
	require.NoError(t, err)
	require.Len(t, pres.Slides(), 3)
	for _, sl := range pres.Slides() {
		assert.Same(t, &tpl.Layouts[0], sl.Layout)
	}
}

func TestAssembleTruncatesOverflowingColumn(t *testing.T) {
	long := strings.Repeat("weigh the tradeoff carefully ", 6)
	items := make([]deck.TextBullet, 10)
	for i := range items {
		items[i] = deck.TextBullet{Text: fmt.Sprintf("%s item %02d", long, i)}
	}
	doc := &deck.Document{
		Title: "Deck",
		Slides: []deck.Slide{{
			Heading: "Tradeoffs",
			Layout:  deck.LayoutTwoColumn,
			Content: []deck.ContentNode{
				deck.Column{Heading: "Pros", Items: items},
				deck.Column{Heading: "Cons", Items: []deck.TextBullet{{Text: "slow"}}},
			},
		}},
	}

	tpl, err := pptx.StarterTemplate()
	require.NoError(t, err)
	pres, warns, err := Assemble(doc, tpl, Options{})
	require.NoError(t, err)

	codes := make(map[deck.WarningCode]bool)
	for _, w := range warns {
		codes[w.Code] = true
	}
	assert.True(t, codes[deck.WarnFontReduced])
	assert.True(t, codes[deck.WarnOverflowDrop])

	var buf bytes.Buffer
	require.NoError(t, pres.Write(&buf))
	slide := readZipParts(t, buf.Bytes())["ppt/slides/slide2.xml"]
	assert.Contains(t, slide, "item 00")
	assert.NotContains(t, slide, "item 09")
	assert.Contains(t, slide, "slow")
}
