package pptx

import (
	"encoding/xml"
	"fmt"
)

// Geometry presets used by the renderer. Values are OOXML prstGeom names.
const (
	GeomRect      = "rect"
	GeomRoundRect = "roundRect"
	GeomChevron   = "chevron"
	GeomPentagon  = "homePlate"
)

// Run is a span of uniformly formatted text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	SizePt float64 // 0 inherits the placeholder size
}

// Paragraph is one paragraph of a text frame.
type Paragraph struct {
	Runs   []Run
	Level  int    // bullet indent level, 0-based
	Align  string // "", "l", "ctr", "r"
	Anchor string // vertical anchor for shape text, e.g. "ctr"
}

// Text builds a single-run paragraph.
func Text(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s}}}
}

// phText binds paragraphs to a layout placeholder.
type phText struct {
	ph    Placeholder
	paras []Paragraph
}

// boxShape is a floating autoshape with optional fill and text.
type boxShape struct {
	geom       string
	x, y, w, h int64
	fill       string // RRGGBB, empty for no fill
	noLine     bool
	paras      []Paragraph
}

// picShape is an embedded raster image.
type picShape struct {
	data       []byte
	ext        string // "png", "jpeg"
	x, y, w, h int64
}

// Slide is one generated slide, bound to a template layout.
type Slide struct {
	Layout *Layout

	title *string
	phs   []phText
	boxes []boxShape
	pics  []picShape
}

// SetTitle fills the layout's title placeholder.
func (s *Slide) SetTitle(text string) {
	s.title = &text
}

// SetPlaceholder fills a body placeholder with paragraphs.
func (s *Slide) SetPlaceholder(ph Placeholder, paras ...Paragraph) {
	s.phs = append(s.phs, phText{ph: ph, paras: paras})
}

// AddShape places a floating autoshape with text on the slide. fill is an
// RRGGBB hex color; the empty string leaves the shape unfilled and borderless.
func (s *Slide) AddShape(geom string, x, y, w, h int64, fill string, paras ...Paragraph) {
	s.boxes = append(s.boxes, boxShape{
		geom: geom, x: x, y: y, w: w, h: h,
		fill: fill, noLine: fill == "",
		paras: paras,
	})
}

// AddTextBox places a plain borderless text box.
func (s *Slide) AddTextBox(x, y, w, h int64, paras ...Paragraph) {
	s.AddShape(GeomRect, x, y, w, h, "", paras...)
}

// AddPicture embeds an image with the given extents.
func (s *Slide) AddPicture(data []byte, ext string, x, y, w, h int64) {
	s.pics = append(s.pics, picShape{data: data, ext: ext, x: x, y: y, w: w, h: h})
}

// marshalSlide produces the slide part XML. picRelIDs holds the relationship
// ID assigned to each picture, in order.
func marshalSlide(s *Slide, picRelIDs []string) ([]byte, error) {
	tree := xmlSpTree{
		NvGrpSpPr: xmlNvGrpSpPr{CNvPr: xmlCNvPr{ID: 1, Name: ""}},
	}
	nextID := 2

	if s.title != nil {
		tree.SPs = append(tree.SPs, xmlSP{
			NvSpPr: xmlNvSpPr{
				CNvPr: xmlCNvPr{ID: nextID, Name: "Title"},
				NvPr:  xmlNvPr{PH: &xmlPH{Type: string(PlaceholderTitle)}},
			},
			TxBody: &xmlTxBody{Paras: paragraphsXML([]Paragraph{Text(*s.title)})},
		})
		nextID++
	}

	for _, pt := range s.phs {
		ph := &xmlPH{Type: string(pt.ph.Type)}
		if pt.ph.Idx > 0 {
			idx := pt.ph.Idx
			ph.Idx = &idx
		}
		name := pt.ph.Name
		if name == "" {
			name = fmt.Sprintf("Content Placeholder %d", nextID)
		}
		tree.SPs = append(tree.SPs, xmlSP{
			NvSpPr: xmlNvSpPr{
				CNvPr: xmlCNvPr{ID: nextID, Name: name},
				NvPr:  xmlNvPr{PH: ph},
			},
			TxBody: &xmlTxBody{Paras: paragraphsXML(pt.paras)},
		})
		nextID++
	}

	for i, box := range s.boxes {
		sp := xmlSP{
			NvSpPr: xmlNvSpPr{
				CNvPr: xmlCNvPr{ID: nextID, Name: fmt.Sprintf("Shape %d", i+1)},
			},
			SpPr: xmlSpPr{
				Xfrm: &xmlXfrm{
					Off: xmlOff{X: box.x, Y: box.y},
					Ext: xmlExt{CX: box.w, CY: box.h},
				},
				Geom: &xmlPrstGeom{Prst: box.geom},
			},
		}
		if box.fill != "" {
			sp.SpPr.Fill = &xmlSolidFill{Clr: xmlSrgbClr{Val: box.fill}}
		}
		if box.noLine {
			sp.SpPr.Line = &xmlLine{NoFill: &struct{}{}}
		}
		if len(box.paras) > 0 {
			body := &xmlTxBody{Paras: paragraphsXML(box.paras)}
			body.BodyPr.Wrap = "square"
			if box.paras[0].Anchor != "" {
				body.BodyPr.Anchor = box.paras[0].Anchor
			}
			sp.TxBody = body
		}
		tree.SPs = append(tree.SPs, sp)
		nextID++
	}

	for i, pic := range s.pics {
		tree.Pics = append(tree.Pics, xmlPic{
			NvPicPr: xmlNvPicPr{
				CNvPr: xmlCNvPr{ID: nextID, Name: fmt.Sprintf("Picture %d", i+1)},
			},
			BlipFill: xmlBlipFill{Blip: xmlBlip{Embed: picRelIDs[i]}},
			SpPr: xmlSpPr{
				Xfrm: &xmlXfrm{
					Off: xmlOff{X: pic.x, Y: pic.y},
					Ext: xmlExt{CX: pic.w, CY: pic.h},
				},
				Geom: &xmlPrstGeom{Prst: GeomRect},
			},
		})
		nextID++
	}

	doc := xmlSlide{
		XMLNSA: nsDrawing,
		XMLNSR: nsRelationships,
		XMLNSP: nsPresentation,
		CSld:   xmlCSld{SpTree: tree},
	}

	data, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling slide: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

func paragraphsXML(paras []Paragraph) []xmlPara {
	out := make([]xmlPara, 0, len(paras))
	for _, p := range paras {
		xp := xmlPara{}
		if p.Level > 0 || p.Align != "" {
			xp.PPr = &xmlPPr{Algn: p.Align}
			if p.Level > 0 {
				lvl := p.Level
				xp.PPr.Lvl = &lvl
			}
		}
		for _, r := range p.Runs {
			xr := xmlRun{T: xmlText{Value: r.Text}}
			rpr := &xmlRPr{Lang: "en-US", Dirty: "0"}
			if r.Bold {
				rpr.B = "1"
			}
			if r.Italic {
				rpr.I = "1"
			}
			if r.SizePt > 0 {
				rpr.Sz = int(r.SizePt * 100)
			}
			xr.RPr = rpr
			xp.Runs = append(xp.Runs, xr)
		}
		out = append(out, xp)
	}
	return out
}
