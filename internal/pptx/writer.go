package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
)

// Presentation accumulates generated slides on top of a template and writes
// the combined package.
type Presentation struct {
	tpl    *Template
	slides []*Slide
}

// NewPresentation starts an empty presentation backed by the template.
func NewPresentation(tpl *Template) *Presentation {
	return &Presentation{tpl: tpl}
}

// Template returns the backing template.
func (p *Presentation) Template() *Template {
	return p.tpl
}

// AddSlide appends a new slide bound to the given layout and returns it for
// population.
func (p *Presentation) AddSlide(layout *Layout) *Slide {
	s := &Slide{Layout: layout}
	p.slides = append(p.slides, s)
	return s
}

// Slides returns the generated slides in order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Save writes the package to a .pptx file.
func (p *Presentation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	relIDRe  = regexp.MustCompile(`Id="rId(\d+)"`)
	sldIDRe  = regexp.MustCompile(`<p:sldId id="(\d+)"`)
	mediaRe  = regexp.MustCompile(`^ppt/media/image(\d+)\.`)
	slidesRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

// Write assembles the output package: template parts plus one part and one
// rels file per generated slide, with the presentation part, its
// relationships, and the content types spliced to register the new slides.
func (p *Presentation) Write(w io.Writer) error {
	out := p.tpl.pkg.clone()

	slideBase := maxPartNumber(out, slidesRe)
	mediaBase := maxPartNumber(out, mediaRe)

	presRelsPath := "ppt/_rels/presentation.xml.rels"
	presRels, ok := out.get(presRelsPath)
	if !ok {
		return fmt.Errorf("template has no %s part", presRelsPath)
	}
	presPath := "ppt/presentation.xml"
	pres, _ := out.get(presPath)

	nextRelID := maxMatch(presRels, relIDRe) + 1
	nextSldID := maxMatch(pres, sldIDRe) + 1
	if nextSldID < 256 {
		nextSldID = 256
	}

	var sldIDList, presRelList bytes.Buffer
	mediaExts := map[string]bool{}

	for i, slide := range p.slides {
		n := slideBase + i + 1
		slidePath := fmt.Sprintf("ppt/slides/slide%d.xml", n)

		rels := []xmlRel{{
			ID:     "rId1",
			Type:   relTypeSlideLayout,
			Target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", slide.Layout.Index+1),
		}}

		picRelIDs := make([]string, 0, len(slide.pics))
		for _, pic := range slide.pics {
			mediaBase++
			mediaPath := fmt.Sprintf("ppt/media/image%d.%s", mediaBase, pic.ext)
			out.set(mediaPath, pic.data)
			mediaExts[pic.ext] = true

			rid := fmt.Sprintf("rId%d", len(rels)+1)
			rels = append(rels, xmlRel{
				ID:     rid,
				Type:   relTypeImage,
				Target: fmt.Sprintf("../media/image%d.%s", mediaBase, pic.ext),
			})
			picRelIDs = append(picRelIDs, rid)
		}

		slideXML, err := marshalSlide(slide, picRelIDs)
		if err != nil {
			return err
		}
		out.set(slidePath, slideXML)

		relsXML, err := marshalRels(rels)
		if err != nil {
			return err
		}
		out.set(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relsXML)

		rid := fmt.Sprintf("rId%d", nextRelID)
		nextRelID++
		fmt.Fprintf(&sldIDList, `<p:sldId id="%d" r:id="%s"/>`, nextSldID, rid)
		nextSldID++
		fmt.Fprintf(&presRelList, `<Relationship Id="%s" Type="%s" Target="slides/slide%d.xml"/>`,
			rid, relTypeSlide, n)
	}

	if err := splicePresentation(out, presPath, sldIDList.Bytes()); err != nil {
		return err
	}
	out.set(presRelsPath, spliceBefore(presRels, "</Relationships>", presRelList.Bytes()))
	spliceContentTypes(out, len(p.slides), slideBase, mediaExts)

	return out.writeTo(w)
}

// splicePresentation inserts the new sldId entries into presentation.xml,
// creating the p:sldIdLst element when the template carries no slides.
func splicePresentation(out *pkg, presPath string, entries []byte) error {
	pres, ok := out.get(presPath)
	if !ok {
		return fmt.Errorf("template has no %s part", presPath)
	}

	switch {
	case bytes.Contains(pres, []byte("</p:sldIdLst>")):
		out.set(presPath, spliceBefore(pres, "</p:sldIdLst>", entries))
	case bytes.Contains(pres, []byte("</p:sldMasterIdLst>")):
		wrapped := append([]byte("<p:sldIdLst>"), entries...)
		wrapped = append(wrapped, []byte("</p:sldIdLst>")...)
		out.set(presPath, spliceAfter(pres, "</p:sldMasterIdLst>", wrapped))
	default:
		return fmt.Errorf("presentation.xml has no slide master list to anchor slides")
	}
	return nil
}

// spliceContentTypes registers the new slide parts and any media extensions.
func spliceContentTypes(out *pkg, count, slideBase int, mediaExts map[string]bool) {
	ctPath := "[Content_Types].xml"
	ct, ok := out.get(ctPath)
	if !ok {
		return
	}

	var add bytes.Buffer
	for i := 0; i < count; i++ {
		fmt.Fprintf(&add, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`,
			slideBase+i+1, contentTypeSlide)
	}
	for ext := range mediaExts {
		def := fmt.Sprintf(`<Default Extension="%s"`, ext)
		if !bytes.Contains(ct, []byte(def)) {
			fmt.Fprintf(&add, `<Default Extension="%s" ContentType="image/%s"/>`, ext, ext)
		}
	}
	out.set(ctPath, spliceBefore(ct, "</Types>", add.Bytes()))
}

func spliceBefore(data []byte, marker string, insert []byte) []byte {
	idx := bytes.Index(data, []byte(marker))
	if idx == -1 {
		return data
	}
	out := make([]byte, 0, len(data)+len(insert))
	out = append(out, data[:idx]...)
	out = append(out, insert...)
	out = append(out, data[idx:]...)
	return out
}

func spliceAfter(data []byte, marker string, insert []byte) []byte {
	idx := bytes.Index(data, []byte(marker))
	if idx == -1 {
		return data
	}
	end := idx + len(marker)
	out := make([]byte, 0, len(data)+len(insert))
	out = append(out, data[:end]...)
	out = append(out, insert...)
	out = append(out, data[end:]...)
	return out
}

func maxMatch(data []byte, re *regexp.Regexp) int {
	max := 0
	for _, m := range re.FindAllSubmatch(data, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > max {
			max = n
		}
	}
	return max
}

func maxPartNumber(p *pkg, re *regexp.Regexp) int {
	max := 0
	for _, name := range p.order {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

func marshalRels(rels []xmlRel) ([]byte, error) {
	data, err := xml.Marshal(xmlRelationships{XMLNS: nsPkgRels, Rels: rels})
	if err != nil {
		return nil, fmt.Errorf("marshaling relationships: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
