package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// The blank skeleton: a minimal 16:9 presentation with one slide master,
// the standard layout set, and a notes master. It is generated in memory
// rather than shipped as a binary asset so the parts stay reviewable.

// blankLayoutNames mirrors the layout ordering of the stock blank
// presentation. Index 6 is "Blank", which layout resolution relies on as
// its first fallback.
var blankLayoutNames = []string{
	"Title Slide",
	"Title and Content",
	"Section Header",
	"Two Content",
	"Comparison",
	"Title Only",
	"Blank",
	"Content with Caption",
	"Picture with Caption",
	"Title and Vertical Text",
	"Vertical Title and Text",
}

var blankLayoutTypes = map[string]string{
	"Title Slide":             "title",
	"Title and Content":       "obj",
	"Section Header":          "secHead",
	"Two Content":             "twoObj",
	"Comparison":              "twoTxTwoObj",
	"Title Only":              "titleOnly",
	"Blank":                   "blank",
	"Content with Caption":    "objTx",
	"Picture with Caption":    "picTx",
	"Title and Vertical Text": "vertTx",
	"Vertical Title and Text": "vertTitleAndTx",
}

const blankPresentationXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst><p:notesMasterIdLst><p:notesMasterId r:id="rId2"/></p:notesMasterIdLst><p:sldIdLst/><p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`

const blankThemeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme"><a:themeElements><a:clrScheme name="Office"><a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2><a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2><a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4><a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6><a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink></a:clrScheme><a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`

const blankMasterTxStyles = `<p:txStyles><p:titleStyle><a:lvl1pPr algn="l"><a:defRPr sz="4400"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle><p:bodyStyle><a:lvl1pPr><a:defRPr sz="1800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:bodyStyle><p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:otherStyle></p:txStyles>`

const blankClrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

const blankPresPropsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentationPr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`

const blankViewPropsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:viewPr xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr></p:viewPr>`

const blankTableStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:tblStyleLst xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`

// blankPackage assembles the skeleton package.
func blankPackage() (*pkg, error) {
	p := newPkg()

	// Root relationships.
	rootRels := relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument", Target: "ppt/presentation.xml"},
			{ID: "rId2", Type: "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties", Target: "docProps/core.xml"},
			{ID: "rId3", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties", Target: "docProps/app.xml"},
		},
	}
	if err := setXMLPart(p, "_rels/.rels", rootRels); err != nil {
		return nil, err
	}

	p.set("ppt/presentation.xml", []byte(blankPresentationXML))

	presRels := relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeSlideMaster, Target: "slideMasters/slideMaster1.xml"},
			{ID: "rId2", Type: relTypeNotesMaster, Target: "notesMasters/notesMaster1.xml"},
			{ID: "rId3", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme", Target: "theme/theme1.xml"},
			{ID: "rId4", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps", Target: "presProps.xml"},
			{ID: "rId5", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps", Target: "viewProps.xml"},
			{ID: "rId6", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles", Target: "tableStyles.xml"},
		},
	}
	if err := setXMLPart(p, "ppt/_rels/presentation.xml.rels", presRels); err != nil {
		return nil, err
	}

	p.set("ppt/theme/theme1.xml", []byte(blankThemeXML))
	p.set("ppt/presProps.xml", []byte(blankPresPropsXML))
	p.set("ppt/viewProps.xml", []byte(blankViewPropsXML))
	p.set("ppt/tableStyles.xml", []byte(blankTableStylesXML))

	// Slide master with its layout index.
	var layoutIDs string
	masterRels := relationshipsXML{Xmlns: nsPackageRels}
	for i := range blankLayoutNames {
		rid := fmt.Sprintf("rId%d", i+1)
		layoutIDs += fmt.Sprintf(`<p:sldLayoutId id="%d" r:id="%s"/>`, 2147483649+i, rid)
		masterRels.Relationships = append(masterRels.Relationships, relationshipXML{
			ID:     rid,
			Type:   relTypeSlideLayout,
			Target: fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1),
		})
	}
	masterRels.Relationships = append(masterRels.Relationships, relationshipXML{
		ID:     fmt.Sprintf("rId%d", len(blankLayoutNames)+1),
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme",
		Target: "../theme/theme1.xml",
	})

	master := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld>` +
		blankClrMap +
		`<p:sldLayoutIdLst>` + layoutIDs + `</p:sldLayoutIdLst>` +
		blankMasterTxStyles +
		`</p:sldMaster>`
	p.set("ppt/slideMasters/slideMaster1.xml", []byte(master))
	if err := setXMLPart(p, "ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels); err != nil {
		return nil, err
	}

	// Layouts.
	for i, name := range blankLayoutNames {
		part := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1)
		p.set(part, []byte(blankLayoutXML(name)))
		rels := relationshipsXML{
			Xmlns: nsPackageRels,
			Relationships: []relationshipXML{
				{ID: "rId1", Type: relTypeSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
			},
		}
		if err := setXMLPart(p, fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), rels); err != nil {
			return nil, err
		}
	}

	// Notes master.
	notesMaster := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notesMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld>` + blankClrMap + `</p:notesMaster>`
	p.set("ppt/notesMasters/notesMaster1.xml", []byte(notesMaster))
	notesMasterRels := relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme", Target: "../theme/theme1.xml"},
		},
	}
	if err := setXMLPart(p, "ppt/notesMasters/_rels/notesMaster1.xml.rels", notesMasterRels); err != nil {
		return nil, err
	}

	// Document properties; the compiler fills in title and author.
	p.set("docProps/core.xml", []byte(corePropsXML("", "")))
	p.set("docProps/app.xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"><Application>deckgen</Application></Properties>`))

	// Content types.
	ct := contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []contentDefaultXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
			{Extension: "png", ContentType: "image/png"},
			{Extension: "jpeg", ContentType: "image/jpeg"},
			{Extension: "jpg", ContentType: "image/jpeg"},
			{Extension: "gif", ContentType: "image/gif"},
		},
		Overrides: []contentOverride{
			{PartName: "/ppt/presentation.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"},
			{PartName: "/ppt/notesMasters/notesMaster1.xml", ContentType: ctNotesMaster},
			{PartName: "/ppt/theme/theme1.xml", ContentType: "application/vnd.openxmlformats-officedocument.theme+xml"},
			{PartName: "/ppt/presProps.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"},
			{PartName: "/ppt/viewProps.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"},
			{PartName: "/ppt/tableStyles.xml", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"},
			{PartName: "/docProps/core.xml", ContentType: "application/vnd.openxmlformats-package.core-properties+xml"},
			{PartName: "/docProps/app.xml", ContentType: "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
		},
	}
	for i := range blankLayoutNames {
		ct.Overrides = append(ct.Overrides, contentOverride{
			PartName:    fmt.Sprintf("/ppt/slideLayouts/slideLayout%d.xml", i+1),
			ContentType: "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml",
		})
	}
	if err := setXMLPart(p, "[Content_Types].xml", ct); err != nil {
		return nil, err
	}

	return p, nil
}

func blankLayoutXML(name string) string {
	typeAttr := ""
	if t, ok := blankLayoutTypes[name]; ok {
		typeAttr = fmt.Sprintf(` type="%s"`, t)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"%s><p:cSld name="%s"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`, typeAttr, xmlEscape(name))
}

func corePropsXML(title, author string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><dc:title>%s</dc:title><dc:creator>%s</dc:creator></cp:coreProperties>`,
		xmlEscape(title), xmlEscape(author))
}

// ensureDefault registers a Default content type for ext when the package
// does not declare one. Template-seeded builds may lack image defaults.
func ensureDefault(ct *contentTypesXML, ext, contentType string) {
	for _, d := range ct.Defaults {
		if d.Extension == ext {
			return
		}
	}
	ct.Defaults = append(ct.Defaults, contentDefaultXML{Extension: ext, ContentType: contentType})
}

// setXMLPart marshals v with the standard declaration and stores it.
func setXMLPart(p *pkg, name string, v any) error {
	data, err := marshalPart(v)
	if err != nil {
		return fmt.Errorf("building part %s: %w", name, err)
	}
	p.set(name, data)
	return nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
