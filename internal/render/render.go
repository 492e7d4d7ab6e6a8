package render

import (
	"fmt"

	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/amrenholt/deckbuild/internal/icons"
	"github.com/amrenholt/deckbuild/internal/layout"
	"github.com/amrenholt/deckbuild/internal/pptx"
)

// ClosingText is the text of the final slide.
const ClosingText = "Thank you!"

// Options configures deck assembly.
type Options struct {
	// TemplatePath keys the template capability cache. Empty for templates
	// built in memory.
	TemplatePath string

	// Icons resolves [[tag]] names to images. Nil disables icon images.
	Icons *icons.Catalog

	// Policy overrides the text fitting parameters. The zero value selects
	// layout.DefaultPolicy.
	Policy layout.Policy
}

// Assemble renders the whole document onto the template: a cover slide, one
// slide per content slide, and a closing slide. Fitting and fallback
// warnings accumulate across slides; the only error is
// layout.ErrNoUsableLayout.
func Assemble(doc *deck.Document, tpl *pptx.Template, opts Options) (*pptx.Presentation, []deck.Warning, error) {
	caps := layout.For(opts.TemplatePath, tpl)
	if !caps.Usable() {
		return nil, nil, layout.ErrNoUsableLayout
	}

	pol := opts.Policy
	if pol.BaseFontPt == 0 {
		pol = layout.DefaultPolicy()
	}
	cat := opts.Icons
	if cat == nil {
		cat, _ = icons.Load("")
	}

	pres := pptx.NewPresentation(tpl)
	pres.AddSlide(&tpl.Layouts[caps.Title]).SetTitle(doc.Title)

	var warns []deck.Warning
	for i := range doc.Slides {
		sl := &doc.Slides[i]
		plan, planWarns, err := layout.Select(i, sl, caps, pol)
		if err != nil {
			return nil, nil, err
		}
		warns = append(warns, planWarns...)

		r := slideRenderer{
			tpl:   tpl,
			cat:   cat,
			pol:   pol,
			index: i,
		}
		warns = append(warns, r.render(pres, sl, plan)...)
	}

	closing := caps.TitleOnly
	if closing < 0 {
		closing = caps.Title
	}
	pres.AddSlide(&tpl.Layouts[closing]).SetTitle(ClosingText)

	return pres, warns, nil
}

// slideRenderer renders one content slide.
type slideRenderer struct {
	tpl   *pptx.Template
	cat   *icons.Catalog
	pol   layout.Policy
	index int
	warns []deck.Warning
}

func (r *slideRenderer) warnf(code deck.WarningCode, format string, args ...any) {
	r.warns = append(r.warns, deck.Warnf(r.index, code, format, args...))
}

func (r *slideRenderer) render(pres *pptx.Presentation, sl *deck.Slide, plan layout.Plan) []deck.Warning {
	target := pres.AddSlide(&r.tpl.Layouts[plan.LayoutIndex])
	target.SetTitle(sl.Heading)

	switch plan.Kind {
	case deck.LayoutTwoColumn:
		r.renderTwoColumn(target, sl, plan)
	case deck.LayoutIconGrid:
		r.renderIconGrid(target, sl, plan)
	case deck.LayoutStepSequence:
		r.renderSteps(target, sl, plan)
	default:
		r.renderStandard(target, sl, plan)
	}

	if sl.KeyMessage != "" {
		r.renderKeyMessage(target, sl.KeyMessage)
	}
	return r.warns
}

// renderStandard fills the body placeholder with a bullet list. Columns that
// survived a two-column fallback flatten into a heading bullet plus an
// indented group, and step bullets pick up their sequence number.
func (r *slideRenderer) renderStandard(target *pptx.Slide, sl *deck.Slide, plan layout.Plan) {
	paras := r.flatten(sl, plan)

	bodies := target.Layout.Bodies()
	if len(bodies) > 0 {
		target.SetPlaceholder(bodies[0], paras...)
		return
	}
	// Title-only layout: draw the list in a text box over the canvas.
	target.AddTextBox(
		pptx.Inches(0.9), pptx.Inches(2.0),
		r.tpl.SlideWidth-pptx.Inches(1.8), r.tpl.SlideHeight-pptx.Inches(3.0),
		paras...)
}

// flatten produces the slide's paragraphs in render order, honoring the
// plan's overflow cut.
func (r *slideRenderer) flatten(sl *deck.Slide, plan layout.Plan) []pptx.Paragraph {
	var paras []pptx.Paragraph
	step := 0

	add := func(text string, level int) {
		paras = append(paras, para(text, level, plan.FontPt))
	}

	for _, node := range sl.Content {
		switch n := node.(type) {
		case deck.TextBullet:
			text := n.Text
			if n.Step {
				step++
				text = fmt.Sprintf("%d. %s", step, text)
			}
			add(text, 0)
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

	if plan.MaxBullets >= 0 && len(paras) > plan.MaxBullets {
		paras = paras[:plan.MaxBullets]
	}
	return paras
}

// renderTwoColumn fills the layout's two body placeholders, one column each,
// with the column heading as a bold lead paragraph.
func (r *slideRenderer) renderTwoColumn(target *pptx.Slide, sl *deck.Slide, plan layout.Plan) {
	bodies := target.Layout.Bodies()
	cols := columns(sl)

	for i, col := range cols {
		if i >= len(bodies) {
			break
		}
		items := col.Items
		if i < len(plan.ColumnItems) && len(items) > plan.ColumnItems[i] {
			items = items[:plan.ColumnItems[i]]
		}
		paras := []pptx.Paragraph{{
			Runs: []pptx.Run{{Text: col.Heading, Bold: true, SizePt: plan.FontPt}},
		}}
		for _, item := range items {
			paras = append(paras, para(item.Text, 1, plan.FontPt))
		}
		target.SetPlaceholder(bodies[i], paras...)
	}
}

func columns(sl *deck.Slide) []deck.Column {
	var out []deck.Column
	for _, node := range sl.Content {
		if col, ok := node.(deck.Column); ok {
			out = append(out, col)
		}
	}
	return out
}
