// Package pptx implements the presentation document codec: a deterministic
// compiler from the IR tree to a .pptx package, and a style scanner that
// recovers design tokens from an existing file. Parts are modeled as typed
// XML structures over the stdlib zip/xml packages.
package pptx

import "encoding/xml"

// XML namespaces used across PPTX parts.
const (
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeNotesMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctSlide       = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctNotesSlide  = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctNotesMaster = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
)

// The read-side structures below match part XML by local element name,
// which is namespace-tolerant: "solidFill" matches a:solidFill regardless
// of the prefix a producer chose.

// presentationXML is the slide index of ppt/presentation.xml.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIDList *slideIDListXML `xml:"sldIdLst"`
	SlideSize   *slideSizeXML   `xml:"sldSz"`
}

type slideIDListXML struct {
	SlideIDs []slideIDXML `xml:"sldId"`
}

type slideIDXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSizeXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

// slideXML is a ppt/slides/slideN.xml part.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

// masterXML is a ppt/slideMasters/slideMasterN.xml part. Only the layout
// ID list matters: it declares the master's layout order.
type masterXML struct {
	XMLName   xml.Name     `xml:"sldMaster"`
	LayoutIDs []slideIDXML `xml:"sldLayoutIdLst>sldLayoutId"`
}

// layoutXML is a ppt/slideLayouts/slideLayoutN.xml part. Only the display
// name matters for layout resolution.
type layoutXML struct {
	XMLName xml.Name `xml:"sldLayout"`
	CSld    struct {
		Name string `xml:"name,attr"`
	} `xml:"cSld"`
}

type cSldXML struct {
	Bg     *bgXML    `xml:"bg"`
	SpTree spTreeXML `xml:"spTree"`
}

type bgXML struct {
	BgPr *bgPrXML `xml:"bgPr"`
}

type bgPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
}

type solidFillXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type srgbClrXML struct {
	Val string `xml:"val,attr"`
}

type spTreeXML struct {
	Shapes        []spXML           `xml:"sp"`
	Pictures      []picXML          `xml:"pic"`
	GraphicFrames []graphicFrameXML `xml:"graphicFrame"`
	Groups        []grpSpXML        `xml:"grpSp"`
}

type spXML struct {
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	SolidFill *solidFillXML `xml:"solidFill"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type txBodyXML struct {
	BodyPr     bodyPrXML `xml:"bodyPr"`
	Paragraphs []pXML    `xml:"p"`
}

type bodyPrXML struct {
	Anchor string `xml:"anchor,attr"`
	Wrap   string `xml:"wrap,attr"`
}

type pXML struct {
	PPr  *pPrXML `xml:"pPr"`
	Runs []rXML  `xml:"r"`
}

type pPrXML struct {
	Algn string `xml:"algn,attr"`
}

type rXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

type rPrXML struct {
	Sz        int           `xml:"sz,attr"`
	B         *int          `xml:"b,attr"`
	I         *int          `xml:"i,attr"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Latin     *latinXML     `xml:"latin"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

type picXML struct {
	SpPr spPrXML `xml:"spPr"`
}

type graphicFrameXML struct {
	Xfrm    *xfrmXML   `xml:"xfrm"`
	Graphic graphicXML `xml:"graphic"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI   string  `xml:"uri,attr"`
	Table *tblXML `xml:"tbl"`
}

type tblXML struct {
	Grid tblGridXML `xml:"tblGrid"`
	Rows []trXML    `xml:"tr"`
}

type tblGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W int64 `xml:"w,attr"`
}

type trXML struct {
	H     int64   `xml:"h,attr"`
	Cells []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

type grpSpXML struct {
	Shapes []spXML    `xml:"sp"`
	Groups []grpSpXML `xml:"grpSp"`
}

// notesXML is a ppt/notesSlides/notesSlideN.xml part.
type notesXML struct {
	XMLName xml.Name `xml:"notes"`
	CSld    cSldXML  `xml:"cSld"`
}

// relationshipsXML is a .rels part. It both parses existing rels and
// serializes rewritten ones.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// contentTypesXML is the [Content_Types].xml part.
type contentTypesXML struct {
	XMLName   xml.Name            `xml:"Types"`
	Xmlns     string              `xml:"xmlns,attr"`
	Defaults  []contentDefaultXML `xml:"Default"`
	Overrides []contentOverride   `xml:"Override"`
}

type contentDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}
