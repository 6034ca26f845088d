package pptx

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/jackzampolin/deckgen/internal/ir"
)

const tableGraphicURI = "http://schemas.openxmlformats.org/drawingml/2006/table"

// Builder compiles a presentation IR into a .pptx file. A Builder is
// stateless across builds; concurrent builds with distinct output paths
// are independent.
type Builder struct {
	logger *slog.Logger
	client *http.Client
}

// NewBuilder creates a compiler. The HTTP client is used for fetching
// image elements by URL.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger: logger,
		client: http.DefaultClient,
	}
}

// WithHTTPClient overrides the client used for image fetches.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder {
	b.client = c
	return b
}

// Build renders the presentation to outputPath. If templatePath names an
// existing file it seeds the build with that document's masters, layouts
// and media; otherwise the build starts from a blank 16:9 document.
// Element-level failures degrade to placeholders and never fail the build;
// template corruption and persistence failures do.
func (b *Builder) Build(pres *ir.Presentation, outputPath, templatePath string) (string, error) {
	p, err := b.basePackage(templatePath)
	if err != nil {
		return "", err
	}

	refs, err := layouts(p)
	if err != nil {
		return "", err
	}

	presRels, err := readRels(p, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return "", err
	}
	ct, err := readContentTypes(p)
	if err != nil {
		return "", err
	}

	nextRel := maxRelID(presRels) + 1
	var slideIDs strings.Builder
	for i := range pres.Slides {
		slide := &pres.Slides[i]
		n := i + 1
		if err := b.emitSlide(p, ct, refs, n, slide); err != nil {
			return "", fmt.Errorf("slide %d: %w", n, err)
		}

		rid := fmt.Sprintf("rId%d", nextRel)
		nextRel++
		presRels.Relationships = append(presRels.Relationships, relationshipXML{
			ID:     rid,
			Type:   relTypeSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", n),
		})
		fmt.Fprintf(&slideIDs, `<p:sldId id="%d" r:id="%s"/>`, 256+i, rid)
	}

	doc, _ := p.get("ppt/presentation.xml")
	doc, err = replaceSlideIDList(doc, slideIDs.String())
	if err != nil {
		return "", err
	}
	p.set("ppt/presentation.xml", doc)

	if err := setXMLPart(p, "ppt/_rels/presentation.xml.rels", presRels); err != nil {
		return "", err
	}
	if err := setXMLPart(p, "[Content_Types].xml", ct); err != nil {
		return "", err
	}

	if p.has("docProps/core.xml") {
		p.set("docProps/core.xml", []byte(corePropsXML(pres.Title, pres.Author)))
	}

	if err := p.save(outputPath); err != nil {
		return "", err
	}
	b.logger.Info("presentation built",
		"path", outputPath,
		"slides", len(pres.Slides),
		"templated", templatePath != "")
	return outputPath, nil
}

// basePackage selects the starting document: the stripped template when one
// is given and exists, the blank skeleton otherwise. A template path that
// exists but cannot be opened is fatal.
func (b *Builder) basePackage(templatePath string) (*pkg, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			return loadTemplate(templatePath)
		}
		b.logger.Warn("template not found, using blank document", "path", templatePath)
	}
	return blankPackage()
}

// emitSlide renders one IR slide as a slide part plus its relationships,
// media, and notes.
func (b *Builder) emitSlide(p *pkg, ct *contentTypesXML, refs []layoutRef, n int, slide *ir.Slide) error {
	layout := resolveLayout(refs, slide.Layout)

	sld := newSlideXML()
	if slide.BackgroundColor != "" {
		sld.CSld.Bg = &wBg{BgPr: wBgPr{SolidFill: solidFill(slide.BackgroundColor)}}
	}

	rels := &relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../" + strings.TrimPrefix(layout.part, "ppt/")},
		},
	}
	nextRel := 2

	shapeID := 2
	for j, el := range slide.Elements {
		switch e := el.(type) {
		case *ir.TextBox:
			sld.CSld.SpTree.Shapes = append(sld.CSld.SpTree.Shapes, textShape(shapeID, e))
			shapeID++
		case *ir.ImageElement:
			if shape := b.imageShape(p, ct, rels, &nextRel, n, j+1, shapeID, e); shape != nil {
				sld.CSld.SpTree.Shapes = append(sld.CSld.SpTree.Shapes, shape)
				shapeID++
			}
		case *ir.ChartElement:
			for _, shape := range chartShapes(shapeID, e) {
				sld.CSld.SpTree.Shapes = append(sld.CSld.SpTree.Shapes, shape)
				shapeID++
			}
		default:
			return fmt.Errorf("unhandled element kind %q", el.Kind())
		}
	}

	part := fmt.Sprintf("ppt/slides/slide%d.xml", n)
	if err := setXMLPart(p, part, sld); err != nil {
		return err
	}
	ct.Overrides = append(ct.Overrides, contentOverride{PartName: "/" + part, ContentType: ctSlide})

	if slide.SpeakerNotes != "" {
		if err := b.emitNotes(p, ct, rels, &nextRel, n, slide.SpeakerNotes); err != nil {
			return err
		}
	}

	return setXMLPart(p, relsPartFor(part), rels)
}

// emitNotes writes the notes slide part for slide n and wires it into the
// slide's relationships.
func (b *Builder) emitNotes(p *pkg, ct *contentTypesXML, slideRels *relationshipsXML, nextRel *int, n int, text string) error {
	notes := newNotesXML()
	notes.CSld.SpTree.Shapes = append(notes.CSld.SpTree.Shapes, &wSp{
		NvSpPr: wNvSpPr{
			CNvPr: wCNvPr{ID: 2, Name: "Notes Placeholder 1"},
			NvPr:  wNvPr{Ph: &wPh{Type: "body", Idx: "1"}},
		},
		TxBody: wTxBody{
			BodyPr:     wBodyPr{Wrap: "square"},
			Paragraphs: []wP{{Runs: []wR{{RPr: wRPr{Lang: "en-US"}, T: text}}}},
		},
	})

	part := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)
	if err := setXMLPart(p, part, notes); err != nil {
		return err
	}
	ct.Overrides = append(ct.Overrides, contentOverride{PartName: "/" + part, ContentType: ctNotesSlide})

	notesRels := &relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeSlide, Target: fmt.Sprintf("../slides/slide%d.xml", n)},
		},
	}
	if p.has("ppt/notesMasters/notesMaster1.xml") {
		notesRels.Relationships = append(notesRels.Relationships, relationshipXML{
			ID:     "rId2",
			Type:   relTypeNotesMaster,
			Target: "../notesMasters/notesMaster1.xml",
		})
	}
	if err := setXMLPart(p, relsPartFor(part), notesRels); err != nil {
		return err
	}

	rid := fmt.Sprintf("rId%d", *nextRel)
	*nextRel++
	slideRels.Relationships = append(slideRels.Relationships, relationshipXML{
		ID:     rid,
		Type:   relTypeNotesSlide,
		Target: fmt.Sprintf("../notesSlides/notesSlide%d.xml", n),
	})
	return nil
}

// textShape builds a text box shape from an IR text element.
func textShape(id int, t *ir.TextBox) *wSp {
	rpr := wRPr{
		Lang: "en-US",
		Sz:   centipoints(t.FontSize),
	}
	if t.FontBold {
		rpr.B = 1
	}
	if t.FontItalic {
		rpr.I = 1
	}
	if t.FontColor != "" {
		fill := solidFill(t.FontColor)
		rpr.SolidFill = &fill
	}
	if t.FontName != "" {
		rpr.Latin = &wLatin{Typeface: t.FontName}
	}

	var ppr *wPPr
	if algn := algnFor(t.Alignment); algn != "" {
		ppr = &wPPr{Algn: algn}
	}

	name := "TextBox"
	if t.IsTitle {
		name = "Title"
	}

	return &wSp{
		NvSpPr: wNvSpPr{
			CNvPr:   wCNvPr{ID: id, Name: fmt.Sprintf("%s %d", name, id)},
			CNvSpPr: wCNvSpPr{TxBox: 1},
		},
		SpPr: wSpPr{
			Xfrm:     frame(t.X, t.Y, t.Width, t.Height),
			PrstGeom: &wPrstGeom{Prst: "rect"},
		},
		TxBody: wTxBody{
			BodyPr: wBodyPr{Wrap: "square", Anchor: anchorFor(t.VerticalAlignment)},
			Paragraphs: []wP{{
				PPr:  ppr,
				Runs: []wR{{RPr: rpr, T: t.Content}},
			}},
		},
	}
}

// imageShape embeds the image's bytes and returns a picture shape. On any
// fetch or embed failure it logs a warning and returns a placeholder text
// box at the same geometry instead. Returns nil when the element has
// neither a URL nor a path.
func (b *Builder) imageShape(p *pkg, ct *contentTypesXML, rels *relationshipsXML, nextRel *int, slideNum, elemNum, id int, img *ir.ImageElement) any {
	if img.URL == "" && img.Path == "" {
		b.logger.Warn("image element has no source, skipping", "slide", slideNum)
		return nil
	}

	data, err := b.imageBytes(img)
	if err == nil {
		var ext, mime string
		ext, mime, err = imageFormat(data)
		if err == nil {
			part := fmt.Sprintf("ppt/media/image_s%d_%d.%s", slideNum, elemNum, ext)
			p.set(part, data)
			ensureDefault(ct, ext, mime)

			rid := fmt.Sprintf("rId%d", *nextRel)
			*nextRel++
			rels.Relationships = append(rels.Relationships, relationshipXML{
				ID:     rid,
				Type:   relTypeImage,
				Target: "../media/" + strings.TrimPrefix(part, "ppt/media/"),
			})

			return &wPic{
				NvPicPr: wNvPicPr{
					CNvPr:    wCNvPr{ID: id, Name: fmt.Sprintf("Picture %d", id), Descr: img.AltText},
					CNvPicPr: wCNvPicPr{PicLocks: wPicLocks{NoChangeAspect: 1}},
				},
				BlipFill: wBlipFill{Blip: wBlip{Embed: rid}},
				SpPr: wSpPr{
					Xfrm:     frame(img.X, img.Y, img.Width, img.Height),
					PrstGeom: &wPrstGeom{Prst: "rect"},
				},
			}
		}
	}

	b.logger.Warn("image unavailable, substituting placeholder",
		"slide", slideNum, "url", img.URL, "path", img.Path, "error", err)
	return textShape(id, imagePlaceholder(img))
}

// imageBytes fetches the element's bytes: URL first, local path second.
func (b *Builder) imageBytes(img *ir.ImageElement) ([]byte, error) {
	if img.URL != "" {
		resp, err := b.client.Get(img.URL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch failed with status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(img.Path)
}

// imagePlaceholder is the text box substituted for a failed image.
func imagePlaceholder(img *ir.ImageElement) *ir.TextBox {
	alt := img.AltText
	if alt == "" {
		alt = "unavailable"
	}
	return &ir.TextBox{
		Content:           fmt.Sprintf("[Image: %s]", alt),
		X:                 img.X,
		Y:                 img.Y,
		Width:             img.Width,
		Height:            img.Height,
		FontSize:          14,
		FontColor:         "#999999",
		Alignment:         ir.AlignCenter,
		VerticalAlignment: ir.VAlignMiddle,
	}
}

// imageFormat sniffs the image type from its bytes.
func imageFormat(data []byte) (ext, mime string, err error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "png", "image/png", nil
	case "image/jpeg":
		return "jpeg", "image/jpeg", nil
	case "image/gif":
		return "gif", "image/gif", nil
	default:
		return "", "", fmt.Errorf("unsupported image format")
	}
}

// chartShapes renders chart data as a table. Empty categories or series
// degrade to a bold centered title box with no table.
func chartShapes(id int, c *ir.ChartElement) []any {
	title := c.Title
	if title == "" {
		title = "[Chart]"
	}

	if len(c.Categories) == 0 || len(c.Series) == 0 {
		return []any{textShape(id, &ir.TextBox{
			Content:   title,
			X:         c.X,
			Y:         c.Y,
			Width:     c.Width,
			Height:    0.5,
			FontSize:  16,
			FontBold:  true,
			Alignment: ir.AlignCenter,
		})}
	}

	rows := len(c.Series) + 1
	cols := len(c.Categories) + 1
	colW := emu(c.Width) / int64(cols)
	rowH := emu(c.Height) / int64(rows)

	tbl := &wTbl{TblPr: wTblPr{FirstRow: 1, BandRow: 1}}
	for i := 0; i < cols; i++ {
		tbl.TblGrid.Cols = append(tbl.TblGrid.Cols, wGridCol{W: colW})
	}

	header := wTr{H: rowH}
	header.Cells = append(header.Cells, tableCell(c.Title))
	for _, cat := range c.Categories {
		header.Cells = append(header.Cells, tableCell(cat))
	}
	tbl.Rows = append(tbl.Rows, header)

	for _, s := range c.Series {
		row := wTr{H: rowH}
		row.Cells = append(row.Cells, tableCell(s.Name))
		for i := range c.Categories {
			if i < len(s.Values) {
				row.Cells = append(row.Cells, tableCell(stringifyValue(s.Values[i])))
			} else {
				row.Cells = append(row.Cells, tableCell(""))
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return []any{&wGraphicFrame{
		NvPr: wNvGraphicFramePr{
			CNvPr:             wCNvPr{ID: id, Name: fmt.Sprintf("Table %d", id)},
			CNvGraphicFramePr: wCNvGraphicFramePr{Locks: wGraphicFrameLocks{NoGrp: 1}},
		},
		Xfrm: *frame(c.X, c.Y, c.Width, c.Height),
		Graphic: wGraphic{GraphicData: wGraphicData{
			URI: tableGraphicURI,
			Tbl: tbl,
		}},
	}}
}

func tableCell(text string) wTc {
	para := wP{}
	if text != "" {
		para.Runs = []wR{{RPr: wRPr{Lang: "en-US"}, T: text}}
	}
	return wTc{TxBody: wTcTxBody{Paragraphs: []wP{para}}}
}

// stringifyValue coerces a chart value to cell text. Numbers decoded from
// JSON carry their original literal, so 20 renders as "20" rather than a
// float form.
func stringifyValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case json.Number:
		return n.String()
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(n)
	}
}

func frame(x, y, w, h float64) *wXfrm {
	return &wXfrm{
		Off: wOff{X: emu(x), Y: emu(y)},
		Ext: wExt{Cx: emu(w), Cy: emu(h)},
	}
}

func solidFill(hex string) wSolidFill {
	return wSolidFill{SrgbClr: wSrgbClr{Val: srgbVal(hex)}}
}

// srgbVal converts a #rrggbb color to the uppercase attribute form.
func srgbVal(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}

func anchorFor(v ir.VerticalAlignment) string {
	switch v {
	case ir.VAlignMiddle:
		return "ctr"
	case ir.VAlignBottom:
		return "b"
	default:
		return "t"
	}
}

func algnFor(h ir.HorizontalAlignment) string {
	switch h {
	case ir.AlignCenter:
		return "ctr"
	case ir.AlignRight:
		return "r"
	case ir.AlignLeft:
		return "l"
	default:
		return ""
	}
}

// maxRelID returns the highest numeric rId in a relationship set.
func maxRelID(rels *relationshipsXML) int {
	max := 0
	for _, r := range rels.Relationships {
		if n, err := strconv.Atoi(strings.TrimPrefix(r.ID, "rId")); err == nil && n > max {
			max = n
		}
	}
	return max
}
