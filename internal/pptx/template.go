package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// PlaceholderType mirrors the OOXML p:ph type attribute. The empty string is
// a generic content placeholder, which PowerPoint treats as a body.
type PlaceholderType string

const (
	PlaceholderTitle       PlaceholderType = "title"
	PlaceholderCenterTitle PlaceholderType = "ctrTitle"
	PlaceholderSubtitle    PlaceholderType = "subTitle"
	PlaceholderBody        PlaceholderType = "body"
	PlaceholderPicture     PlaceholderType = "pic"
	PlaceholderSlideNumber PlaceholderType = "sldNum"
	PlaceholderFooter      PlaceholderType = "ftr"
	PlaceholderDateTime    PlaceholderType = "dt"
	PlaceholderGenericBody PlaceholderType = ""
)

// IsBody reports whether the placeholder accepts bullet text.
func (t PlaceholderType) IsBody() bool {
	return t == PlaceholderBody || t == PlaceholderGenericBody
}

// IsTitle reports whether the placeholder holds the slide title.
func (t PlaceholderType) IsTitle() bool {
	return t == PlaceholderTitle || t == PlaceholderCenterTitle
}

// Placeholder describes one placeholder shape of a slide layout.
type Placeholder struct {
	Idx  int // p:ph idx attribute; 0 for the title
	Type PlaceholderType
	Name string // shape name from p:cNvPr

	// Geometry in EMU. Zero extents mean the layout inherits geometry from
	// its master and none was declared locally.
	X, Y, W, H int64
}

// Layout is one slide layout of a template.
type Layout struct {
	Index        int    // zero-based position among the template's layouts
	Path         string // package part path
	Name         string // layout name from p:cSld
	Placeholders []Placeholder
}

// Bodies returns the layout's text body placeholders in declaration order.
func (l *Layout) Bodies() []Placeholder {
	var out []Placeholder
	for _, ph := range l.Placeholders {
		if ph.Type.IsBody() {
			out = append(out, ph)
		}
	}
	return out
}

// HasTitle reports whether the layout declares a title placeholder.
func (l *Layout) HasTitle() bool {
	for _, ph := range l.Placeholders {
		if ph.Type.IsTitle() {
			return true
		}
	}
	return false
}

// Template is a loaded .pptx template package.
type Template struct {
	pkg *pkg

	// Slide dimensions in EMU.
	SlideWidth  int64
	SlideHeight int64

	Layouts []Layout
}

// OpenTemplate loads a template package from disk.
func OpenTemplate(path string) (*Template, error) {
	p, err := readPkgFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", path, err)
	}
	return newTemplate(p)
}

// TemplateFromBytes loads a template package held in memory.
func TemplateFromBytes(data []byte) (*Template, error) {
	p, err := readPkg(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return newTemplate(p)
}

func newTemplate(p *pkg) (*Template, error) {
	t := &Template{pkg: p}

	pres, ok := p.get("ppt/presentation.xml")
	if !ok {
		return nil, fmt.Errorf("template has no ppt/presentation.xml part")
	}
	w, h, err := parseSlideSize(pres)
	if err != nil {
		return nil, err
	}
	t.SlideWidth, t.SlideHeight = w, h

	// Layout parts are numbered from 1 without gaps, same convention the
	// slide parts follow.
	for i := 1; ; i++ {
		path := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i)
		data, ok := p.get(path)
		if !ok {
			break
		}
		layout, err := parseLayout(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		layout.Index = i - 1
		layout.Path = path
		t.Layouts = append(t.Layouts, layout)
	}

	if len(t.Layouts) == 0 {
		return nil, fmt.Errorf("template declares no slide layouts")
	}
	return t, nil
}

// parseSlideSize extracts the cx/cy attributes of p:sldSz.
func parseSlideSize(pres []byte) (int64, int64, error) {
	dec := xml.NewDecoder(bytes.NewReader(pres))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("parsing presentation.xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "sldSz" {
			continue
		}
		var cx, cy int64
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "cx":
				cx, _ = strconv.ParseInt(attr.Value, 10, 64)
			case "cy":
				cy, _ = strconv.ParseInt(attr.Value, 10, 64)
			}
		}
		if cx == 0 || cy == 0 {
			return 0, 0, fmt.Errorf("presentation.xml has an invalid sldSz")
		}
		return cx, cy, nil
	}
	return 0, 0, fmt.Errorf("presentation.xml declares no slide size")
}

// parseLayout walks a slideLayout part and collects its name and placeholder
// shapes with whatever geometry is declared locally.
func parseLayout(data []byte) (Layout, error) {
	var layout Layout

	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		inShape bool
		current Placeholder
		isPH    bool
		inXfrm  bool
	)

	flush := func() {
		if isPH {
			layout.Placeholders = append(layout.Placeholders, current)
		}
		inShape, isPH, inXfrm = false, false, false
		current = Placeholder{}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Layout{}, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "cSld":
				for _, attr := range el.Attr {
					if attr.Name.Local == "name" {
						layout.Name = attr.Value
					}
				}
			case "sp":
				inShape = true
				current = Placeholder{}
			case "cNvPr":
				if inShape {
					for _, attr := range el.Attr {
						if attr.Name.Local == "name" {
							current.Name = attr.Value
						}
					}
				}
			case "ph":
				if !inShape {
					continue
				}
				isPH = true
				for _, attr := range el.Attr {
					switch attr.Name.Local {
					case "type":
						current.Type = PlaceholderType(attr.Value)
					case "idx":
						current.Idx, _ = strconv.Atoi(attr.Value)
					}
				}
			case "xfrm":
				inXfrm = inShape
			case "off":
				if inXfrm {
					for _, attr := range el.Attr {
						switch attr.Name.Local {
						case "x":
							current.X, _ = strconv.ParseInt(attr.Value, 10, 64)
						case "y":
							current.Y, _ = strconv.ParseInt(attr.Value, 10, 64)
						}
					}
				}
			case "ext":
				if inXfrm {
					for _, attr := range el.Attr {
						switch attr.Name.Local {
						case "cx":
							current.W, _ = strconv.ParseInt(attr.Value, 10, 64)
						case "cy":
							current.H, _ = strconv.ParseInt(attr.Value, 10, 64)
						}
					}
				}
			}

		case xml.EndElement:
			switch el.Name.Local {
			case "sp":
				flush()
			case "xfrm":
				inXfrm = false
			}
		}
	}

	return layout, nil
}
