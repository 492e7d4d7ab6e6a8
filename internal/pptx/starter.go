package pptx

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// The starter template is a minimal 16:9 presentation with no slides and
// four layouts, generated entirely in code so the binary ships without a
// bundled .pptx. It parses with the same loader user templates go through.

// Starter layout positions, by index.
const (
	StarterLayoutTitle      = 0 // centered title + subtitle
	StarterLayoutContent    = 1 // title + one body
	StarterLayoutTwoContent = 2 // title + two side-by-side bodies
	StarterLayoutTitleOnly  = 3 // title, free canvas below
)

// StarterTemplate builds the built-in template in memory.
func StarterTemplate() (*Template, error) {
	var buf bytes.Buffer
	if err := starterPkg().writeTo(&buf); err != nil {
		return nil, fmt.Errorf("building starter template: %w", err)
	}
	return TemplateFromBytes(buf.Bytes())
}

// WriteStarterTemplate saves the built-in template as a .pptx file, as a
// starting point for users who want to restyle it.
func WriteStarterTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := starterPkg().writeTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func starterPkg() *pkg {
	p := newPkg()
	p.set("[Content_Types].xml", []byte(starterContentTypes))
	p.set("_rels/.rels", []byte(starterRootRels))
	p.set("ppt/presentation.xml", []byte(starterPresentation))
	p.set("ppt/_rels/presentation.xml.rels", []byte(starterPresentationRels))
	p.set("ppt/slideMasters/slideMaster1.xml", []byte(starterMaster))
	p.set("ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(starterMasterRels))
	p.set("ppt/theme/theme1.xml", []byte(starterTheme))

	for i, layout := range starterLayouts() {
		p.set(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), []byte(layout))
		p.set(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), []byte(starterLayoutRels))
	}
	return p
}

// layoutXML assembles one slideLayout part from placeholder shape fragments.
func layoutXML(name, layoutType string, shapes ...string) string {
	attrs := fmt.Sprintf(`xmlns:a=%q xmlns:r=%q xmlns:p=%q`, nsDrawing, nsRelationships, nsPresentation)
	if layoutType != "" {
		attrs += fmt.Sprintf(` type=%q`, layoutType)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		fmt.Sprintf(`<p:sldLayout %s><p:cSld name=%q><p:spTree>`, attrs, name) +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

// phShape emits one placeholder shape. idx -1 omits the idx attribute, the
// convention for title placeholders.
func phShape(id int, name, phType string, idx int, x, y, w, h int64) string {
	var ph strings.Builder
	ph.WriteString(`<p:ph`)
	if phType != "" {
		fmt.Fprintf(&ph, ` type=%q`, phType)
	}
	if idx >= 0 {
		fmt.Fprintf(&ph, ` idx="%d"`, idx)
	}
	ph.WriteString(`/>`)

	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name=%q/>`+
		`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr>%s</p:nvPr></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr lang="en-US"/></a:p></p:txBody></p:sp>`,
		id, name, ph.String(), x, y, w, h)
}

func starterLayouts() []string {
	// 16:9 geometry, in EMU.
	const (
		titleX, titleY = 838200, 365125
		titleW, titleH = 10515600, 1325563
		bodyY          = 1825625
		bodyH          = 4351338
		halfW          = 5181600
		rightX         = 6172200
	)

	return []string{
		layoutXML("Title Slide", "title",
			phShape(2, "Title 1", "ctrTitle", -1, 1524000, 1122363, 9144000, 2387600),
			phShape(3, "Subtitle 2", "subTitle", 1, 2133600, 3602038, 7924800, 1655762),
		),
		layoutXML("Title and Content", "obj",
			phShape(2, "Title 1", "title", -1, titleX, titleY, titleW, titleH),
			phShape(3, "Content Placeholder 2", "body", 1, titleX, bodyY, titleW, bodyH),
		),
		layoutXML("Two Content", "twoObj",
			phShape(2, "Title 1", "title", -1, titleX, titleY, titleW, titleH),
			phShape(3, "Content Placeholder 2", "body", 1, titleX, bodyY, halfW, bodyH),
			phShape(4, "Content Placeholder 3", "body", 2, rightX, bodyY, halfW, bodyH),
		),
		layoutXML("Title Only", "titleOnly",
			phShape(2, "Title 1", "title", -1, titleX, titleY, titleW, titleH),
		),
	}
}

const starterContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
	`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout2.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout3.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout4.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
	`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
	`</Types>`

const starterRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

const starterPresentation = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
	`<p:sldSz cx="12192000" cy="6858000"/>` +
	`<p:notesSz cx="6858000" cy="9144000"/>` +
	`</p:presentation>`

const starterPresentationRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>` +
	`</Relationships>`

const starterMaster = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst>` +
	`<p:sldLayoutId id="2147483649" r:id="rId1"/>` +
	`<p:sldLayoutId id="2147483650" r:id="rId2"/>` +
	`<p:sldLayoutId id="2147483651" r:id="rId3"/>` +
	`<p:sldLayoutId id="2147483652" r:id="rId4"/>` +
	`</p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const starterMasterRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout2.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout3.xml"/>` +
	`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout4.xml"/>` +
	`<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const starterLayoutRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const starterTheme = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Deckbuild">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Deckbuild">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Deckbuild">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Deckbuild">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`
