package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Write-side structures. Unlike the read side, serialized parts must carry
// explicit namespace prefixes (p:, a:, r:), so these structs spell the
// prefixes out in their tags and declare the namespaces on the root element.

type wSlide struct {
	XMLName   xml.Name    `xml:"p:sld"`
	XmlnsA    string      `xml:"xmlns:a,attr"`
	XmlnsR    string      `xml:"xmlns:r,attr"`
	XmlnsP    string      `xml:"xmlns:p,attr"`
	CSld      wCSld       `xml:"p:cSld"`
	ClrMapOvr wClrMapOvr  `xml:"p:clrMapOvr"`
}

type wNotes struct {
	XMLName   xml.Name   `xml:"p:notes"`
	XmlnsA    string     `xml:"xmlns:a,attr"`
	XmlnsR    string     `xml:"xmlns:r,attr"`
	XmlnsP    string     `xml:"xmlns:p,attr"`
	CSld      wCSld      `xml:"p:cSld"`
	ClrMapOvr wClrMapOvr `xml:"p:clrMapOvr"`
}

type wClrMapOvr struct {
	MasterClrMapping struct{} `xml:"a:masterClrMapping"`
}

type wCSld struct {
	Bg     *wBg    `xml:"p:bg"`
	SpTree wSpTree `xml:"p:spTree"`
}

type wBg struct {
	BgPr wBgPr `xml:"p:bgPr"`
}

type wBgPr struct {
	SolidFill wSolidFill `xml:"a:solidFill"`
	EffectLst struct{}   `xml:"a:effectLst"`
}

type wSolidFill struct {
	SrgbClr wSrgbClr `xml:"a:srgbClr"`
}

type wSrgbClr struct {
	Val string `xml:"val,attr"`
}

type wSpTree struct {
	NvGrpSpPr wNvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   wGrpSpPr   `xml:"p:grpSpPr"`

	// Shapes in document order. Each concrete type carries its own
	// XMLName (p:sp, p:pic, p:graphicFrame), which encoding/xml uses
	// when marshaling interface values.
	Shapes []any
}

type wNvGrpSpPr struct {
	CNvPr      wCNvPr   `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type wCNvPr struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type wGrpSpPr struct {
	Xfrm wGrpXfrm `xml:"a:xfrm"`
}

type wGrpXfrm struct {
	Off   wOff `xml:"a:off"`
	Ext   wExt `xml:"a:ext"`
	ChOff wOff `xml:"a:chOff"`
	ChExt wExt `xml:"a:chExt"`
}

type wOff struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type wExt struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type wSp struct {
	XMLName xml.Name `xml:"p:sp"`
	NvSpPr  wNvSpPr  `xml:"p:nvSpPr"`
	SpPr    wSpPr    `xml:"p:spPr"`
	TxBody  wTxBody  `xml:"p:txBody"`
}

type wNvSpPr struct {
	CNvPr   wCNvPr   `xml:"p:cNvPr"`
	CNvSpPr wCNvSpPr `xml:"p:cNvSpPr"`
	NvPr    wNvPr    `xml:"p:nvPr"`
}

type wCNvSpPr struct {
	TxBox int `xml:"txBox,attr,omitempty"`
}

type wNvPr struct {
	Ph *wPh `xml:"p:ph"`
}

type wPh struct {
	Type string `xml:"type,attr,omitempty"`
	Idx  string `xml:"idx,attr,omitempty"`
}

type wSpPr struct {
	Xfrm     *wXfrm     `xml:"a:xfrm"`
	PrstGeom *wPrstGeom `xml:"a:prstGeom"`
}

type wXfrm struct {
	Off wOff `xml:"a:off"`
	Ext wExt `xml:"a:ext"`
}

type wPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type wTxBody struct {
	XMLName    xml.Name `xml:"p:txBody"`
	BodyPr     wBodyPr  `xml:"a:bodyPr"`
	LstStyle   struct{} `xml:"a:lstStyle"`
	Paragraphs []wP     `xml:"a:p"`
}

type wBodyPr struct {
	Wrap   string `xml:"wrap,attr,omitempty"`
	Anchor string `xml:"anchor,attr,omitempty"`
}

type wP struct {
	PPr  *wPPr `xml:"a:pPr"`
	Runs []wR  `xml:"a:r"`
}

type wPPr struct {
	Algn string `xml:"algn,attr,omitempty"`
}

type wR struct {
	RPr wRPr   `xml:"a:rPr"`
	T   string `xml:"a:t"`
}

type wRPr struct {
	Lang      string      `xml:"lang,attr,omitempty"`
	Sz        int         `xml:"sz,attr,omitempty"`
	B         int         `xml:"b,attr,omitempty"`
	I         int         `xml:"i,attr,omitempty"`
	SolidFill *wSolidFill `xml:"a:solidFill"`
	Latin     *wLatin     `xml:"a:latin"`
}

type wLatin struct {
	Typeface string `xml:"typeface,attr"`
}

type wPic struct {
	XMLName  xml.Name  `xml:"p:pic"`
	NvPicPr  wNvPicPr  `xml:"p:nvPicPr"`
	BlipFill wBlipFill `xml:"p:blipFill"`
	SpPr     wSpPr     `xml:"p:spPr"`
}

type wNvPicPr struct {
	CNvPr    wCNvPr    `xml:"p:cNvPr"`
	CNvPicPr wCNvPicPr `xml:"p:cNvPicPr"`
	NvPr     wNvPr     `xml:"p:nvPr"`
}

type wCNvPicPr struct {
	PicLocks wPicLocks `xml:"a:picLocks"`
}

type wPicLocks struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type wBlipFill struct {
	Blip    wBlip    `xml:"a:blip"`
	Stretch wStretch `xml:"a:stretch"`
}

type wBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type wStretch struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type wGraphicFrame struct {
	XMLName xml.Name          `xml:"p:graphicFrame"`
	NvPr    wNvGraphicFramePr `xml:"p:nvGraphicFramePr"`
	Xfrm    wXfrm             `xml:"p:xfrm"`
	Graphic wGraphic          `xml:"a:graphic"`
}

type wNvGraphicFramePr struct {
	CNvPr             wCNvPr               `xml:"p:cNvPr"`
	CNvGraphicFramePr wCNvGraphicFramePr   `xml:"p:cNvGraphicFramePr"`
	NvPr              struct{}             `xml:"p:nvPr"`
}

type wCNvGraphicFramePr struct {
	Locks wGraphicFrameLocks `xml:"a:graphicFrameLocks"`
}

type wGraphicFrameLocks struct {
	NoGrp int `xml:"noGrp,attr"`
}

type wGraphic struct {
	GraphicData wGraphicData `xml:"a:graphicData"`
}

type wGraphicData struct {
	URI string `xml:"uri,attr"`
	Tbl *wTbl  `xml:"a:tbl"`
}

type wTbl struct {
	TblPr   wTblPr   `xml:"a:tblPr"`
	TblGrid wTblGrid `xml:"a:tblGrid"`
	Rows    []wTr    `xml:"a:tr"`
}

type wTblPr struct {
	FirstRow int `xml:"firstRow,attr"`
	BandRow  int `xml:"bandRow,attr"`
}

type wTblGrid struct {
	Cols []wGridCol `xml:"a:gridCol"`
}

type wGridCol struct {
	W int64 `xml:"w,attr"`
}

type wTr struct {
	H     int64 `xml:"h,attr"`
	Cells []wTc `xml:"a:tc"`
}

type wTc struct {
	TxBody wTcTxBody `xml:"a:txBody"`
	TcPr   struct{}  `xml:"a:tcPr"`
}

// wTcTxBody is the txBody of a table cell, which lives in the drawing
// namespace rather than the presentation one.
type wTcTxBody struct {
	BodyPr     wBodyPr  `xml:"a:bodyPr"`
	LstStyle   struct{} `xml:"a:lstStyle"`
	Paragraphs []wP     `xml:"a:p"`
}

func newSlideXML() *wSlide {
	return &wSlide{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		CSld:   wCSld{SpTree: newSpTree()},
	}
}

func newNotesXML() *wNotes {
	return &wNotes{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		CSld:   wCSld{SpTree: newSpTree()},
	}
}

func newSpTree() wSpTree {
	return wSpTree{
		NvGrpSpPr: wNvGrpSpPr{CNvPr: wCNvPr{ID: 1, Name: ""}},
	}
}

// marshalPart serializes a write struct with the standard XML declaration.
func marshalPart(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize part: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	return buf.Bytes(), nil
}
