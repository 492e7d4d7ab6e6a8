package render

import (
	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/amrenholt/deckbuild/internal/layout"
	"github.com/amrenholt/deckbuild/internal/pptx"
)

// accentPalette cycles through the theme accents for drawn shapes.
var accentPalette = []string{"4472C4", "ED7D31", "70AD47", "FFC000", "5B9BD5", "A5A5A5"}

func accent(i int) string {
	return accentPalette[i%len(accentPalette)]
}

const maxTilesPerRow = 4

// renderIconGrid draws one colored tile per bullet: the icon image on top,
// the text centered beneath it. Bullets whose icon is not installed still
// get a tile, minus the image.
func (r *slideRenderer) renderIconGrid(target *pptx.Slide, sl *deck.Slide, plan layout.Plan) {
	var items []deck.TextBullet
	for _, node := range sl.Content {
		if tb, ok := node.(deck.TextBullet); ok {
			items = append(items, tb)
		}
	}
	if len(items) == 0 {
		return
	}

	perRow := len(items)
	if perRow > maxTilesPerRow {
		perRow = maxTilesPerRow
	}
	rows := (len(items) + perRow - 1) / perRow

	marginX := pptx.Inches(0.8)
	top := pptx.Inches(1.9)
	gap := pptx.Inches(0.3)
	usableW := r.tpl.SlideWidth - 2*marginX
	usableH := r.tpl.SlideHeight - top - pptx.Inches(0.7)

	tileW := (usableW - int64(perRow-1)*gap) / int64(perRow)
	tileH := (usableH - int64(rows-1)*gap) / int64(rows)
	iconSide := tileH / 2
	if iconSide > pptx.Inches(1.2) {
		iconSide = pptx.Inches(1.2)
	}

	for i, item := range items {
		row, col := i/perRow, i%perRow
		x := marginX + int64(col)*(tileW+gap)
		y := top + int64(row)*(tileH+gap)

		target.AddShape(pptx.GeomRoundRect, x, y, tileW, tileH, accent(i))

		textTop := y + tileH/2
		if data, ok := r.cat.Lookup(item.Icon); ok {
			target.AddPicture(data, "png",
				x+(tileW-iconSide)/2, y+pptx.Inches(0.15), iconSide, iconSide)
		} else {
			r.warnf(deck.WarnUnknownIcon, "icon %q is not installed", item.Icon)
			textTop = y + pptx.Inches(0.15)
		}

		target.AddTextBox(x+pptx.Inches(0.1), textTop, tileW-pptx.Inches(0.2), y+tileH-textTop,
			pptx.Paragraph{
				Runs:   runs(item.Text, r.pol.MinFontPt),
				Align:  "ctr",
				Anchor: "ctr",
			})
	}
}

// renderSteps draws the step sequence as process shapes: a horizontal
// chevron row for three or four steps, a descending staircase of pentagons
// for five or six.
func (r *slideRenderer) renderSteps(target *pptx.Slide, sl *deck.Slide, plan layout.Plan) {
	var items []deck.TextBullet
	for _, node := range sl.Content {
		if tb, ok := node.(deck.TextBullet); ok {
			items = append(items, tb)
		}
	}
	if len(items) <= 4 {
		r.renderChevronRow(target, items)
		return
	}
	r.renderStaircase(target, items)
}

func (r *slideRenderer) renderChevronRow(target *pptx.Slide, items []deck.TextBullet) {
	marginX := pptx.Inches(0.6)
	usableW := r.tpl.SlideWidth - 2*marginX
	overlap := pptx.Inches(0.4)

	n := int64(len(items))
	w := (usableW + (n-1)*overlap) / n
	h := pptx.Inches(1.6)
	y := (r.tpl.SlideHeight - h) / 2

	for i, item := range items {
		x := marginX + int64(i)*(w-overlap)
		target.AddShape(pptx.GeomChevron, x, y, w, h, accent(i),
			pptx.Paragraph{
				Runs:   runs(item.Text, r.pol.MinFontPt),
				Align:  "ctr",
				Anchor: "ctr",
			})
	}
}

func (r *slideRenderer) renderStaircase(target *pptx.Slide, items []deck.TextBullet) {
	w := pptx.Inches(5.2)
	h := pptx.Inches(0.9)
	stepX := (r.tpl.SlideWidth - w - pptx.Inches(1.2)) / int64(len(items)-1)
	stepY := (r.tpl.SlideHeight - pptx.Inches(2.6) - h) / int64(len(items)-1)

	for i, item := range items {
		x := pptx.Inches(0.6) + int64(i)*stepX
		y := pptx.Inches(1.9) + int64(i)*stepY
		target.AddShape(pptx.GeomPentagon, x, y, w, h, accent(i),
			pptx.Paragraph{
				Runs:   runs(item.Text, r.pol.MinFontPt),
				Align:  "ctr",
				Anchor: "ctr",
			})
	}
}

// renderKeyMessage draws the takeaway in a rounded box along the bottom
// edge.
func (r *slideRenderer) renderKeyMessage(target *pptx.Slide, message string) {
	h := pptx.Inches(0.6)
	marginX := pptx.Inches(0.8)
	target.AddShape(pptx.GeomRoundRect,
		marginX, r.tpl.SlideHeight-h-pptx.Inches(0.25),
		r.tpl.SlideWidth-2*marginX, h, "44546A",
		pptx.Paragraph{
			Runs:   runs(message, r.pol.MinFontPt),
			Align:  "ctr",
			Anchor: "ctr",
		})
}
