package pptx

import "encoding/xml"

// Marshal structs for the slide part XML. Element names carry their OOXML
// prefixes literally; the namespaces are declared once on the root element.

const (
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsPkgRels       = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	contentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

type xmlSlide struct {
	XMLName xml.Name `xml:"p:sld"`
	XMLNSA  string   `xml:"xmlns:a,attr"`
	XMLNSR  string   `xml:"xmlns:r,attr"`
	XMLNSP  string   `xml:"xmlns:p,attr"`

	CSld      xmlCSld      `xml:"p:cSld"`
	ClrMapOvr xmlClrMapOvr `xml:"p:clrMapOvr"`
}

type xmlCSld struct {
	SpTree xmlSpTree `xml:"p:spTree"`
}

type xmlClrMapOvr struct {
	MasterClrMapping struct{} `xml:"a:masterClrMapping"`
}

type xmlSpTree struct {
	NvGrpSpPr xmlNvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   struct{}     `xml:"p:grpSpPr"`
	SPs       []xmlSP      `xml:"p:sp"`
	Pics      []xmlPic     `xml:"p:pic"`
}

type xmlNvGrpSpPr struct {
	CNvPr      xmlCNvPr `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type xmlCNvPr struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlSP struct {
	NvSpPr xmlNvSpPr  `xml:"p:nvSpPr"`
	SpPr   xmlSpPr    `xml:"p:spPr"`
	TxBody *xmlTxBody `xml:"p:txBody,omitempty"`
}

type xmlNvSpPr struct {
	CNvPr   xmlCNvPr `xml:"p:cNvPr"`
	CNvSpPr struct{} `xml:"p:cNvSpPr"`
	NvPr    xmlNvPr  `xml:"p:nvPr"`
}

type xmlNvPr struct {
	PH *xmlPH `xml:"p:ph,omitempty"`
}

type xmlPH struct {
	Type string `xml:"type,attr,omitempty"`
	Idx  *int   `xml:"idx,attr,omitempty"`
}

type xmlSpPr struct {
	Xfrm *xmlXfrm      `xml:"a:xfrm,omitempty"`
	Geom *xmlPrstGeom  `xml:"a:prstGeom,omitempty"`
	Fill *xmlSolidFill `xml:"a:solidFill,omitempty"`
	Line *xmlLine      `xml:"a:ln,omitempty"`
}

type xmlXfrm struct {
	Off xmlOff `xml:"a:off"`
	Ext xmlExt `xml:"a:ext"`
}

type xmlOff struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xmlExt struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xmlPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type xmlSolidFill struct {
	Clr xmlSrgbClr `xml:"a:srgbClr"`
}

type xmlSrgbClr struct {
	Val string `xml:"val,attr"`
}

type xmlLine struct {
	NoFill *struct{}     `xml:"a:noFill,omitempty"`
	Fill   *xmlSolidFill `xml:"a:solidFill,omitempty"`
}

type xmlTxBody struct {
	BodyPr   xmlBodyPr `xml:"a:bodyPr"`
	LstStyle struct{}  `xml:"a:lstStyle"`
	Paras    []xmlPara `xml:"a:p"`
}

type xmlBodyPr struct {
	Wrap   string `xml:"wrap,attr,omitempty"`
	Anchor string `xml:"anchor,attr,omitempty"`
}

type xmlPara struct {
	PPr  *xmlPPr  `xml:"a:pPr,omitempty"`
	Runs []xmlRun `xml:"a:r"`
}

type xmlPPr struct {
	Lvl  *int   `xml:"lvl,attr,omitempty"`
	Algn string `xml:"algn,attr,omitempty"`
}

type xmlRun struct {
	RPr *xmlRPr `xml:"a:rPr,omitempty"`
	T   xmlText `xml:"a:t"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

type xmlRPr struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Sz    int    `xml:"sz,attr,omitempty"` // hundredths of a point
	B     string `xml:"b,attr,omitempty"`
	I     string `xml:"i,attr,omitempty"`
	Dirty string `xml:"dirty,attr,omitempty"`
}

type xmlPic struct {
	NvPicPr  xmlNvPicPr  `xml:"p:nvPicPr"`
	BlipFill xmlBlipFill `xml:"p:blipFill"`
	SpPr     xmlSpPr     `xml:"p:spPr"`
}

type xmlNvPicPr struct {
	CNvPr    xmlCNvPr `xml:"p:cNvPr"`
	CNvPicPr struct{} `xml:"p:cNvPicPr"`
	NvPr     struct{} `xml:"p:nvPr"`
}

type xmlBlipFill struct {
	Blip    xmlBlip    `xml:"a:blip"`
	Stretch xmlStretch `xml:"a:stretch"`
}

type xmlBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type xmlStretch struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type xmlRelationships struct {
	XMLName xml.Name `xml:"Relationships"`
	XMLNS   string   `xml:"xmlns,attr"`
	Rels    []xmlRel `xml:"Relationship"`
}

type xmlRel struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
