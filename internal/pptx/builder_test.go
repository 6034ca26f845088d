package pptx

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/deckgen/internal/ir"
)

func testPresentation(slides ...ir.Slide) *ir.Presentation {
	return &ir.Presentation{
		Title:  "Test Deck",
		Author: "deckgen",
		Theme:  ir.DefaultTheme(),
		Slides: slides,
	}
}

func textSlide(content string) ir.Slide {
	return ir.Slide{
		Layout:          ir.LayoutTitleContent,
		BackgroundColor: "#ffffff",
		Elements: []ir.Element{
			&ir.TextBox{
				Content: content, X: 0.5, Y: 0.5, Width: 9, Height: 1,
				FontName: "Calibri", FontSize: 18, FontColor: "#333333",
				Alignment: ir.AlignLeft, VerticalAlignment: ir.VAlignTop,
			},
		},
	}
}

func buildFile(t *testing.T, pres *ir.Presentation, templatePath string) (string, *pkg) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.pptx")
	path, err := NewBuilder(nil).Build(pres, out, templatePath)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p, err := openPkg(path)
	if err != nil {
		t.Fatalf("reopening output: %v", err)
	}
	return path, p
}

func readSlidePart(t *testing.T, p *pkg, n int) *slideXML {
	t.Helper()
	data, ok := p.get(fmt.Sprintf("ppt/slides/slide%d.xml", n))
	if !ok {
		t.Fatalf("slide %d missing from package", n)
	}
	var sld slideXML
	if err := xml.Unmarshal(data, &sld); err != nil {
		t.Fatalf("parsing slide %d: %v", n, err)
	}
	return &sld
}

func TestBuildPreservesSlideAndElementCounts(t *testing.T) {
	pres := testPresentation(
		textSlide("one"),
		textSlide("two"),
		ir.Slide{
			Layout:          ir.LayoutTwoColumn,
			BackgroundColor: "#ffffff",
			Elements: []ir.Element{
				&ir.TextBox{Content: "left", X: 0.5, Y: 1, Width: 4, Height: 4, FontSize: 14},
				&ir.TextBox{Content: "right", X: 5, Y: 1, Width: 4, Height: 4, FontSize: 14},
			},
		},
	)

	_, p := buildFile(t, pres, "")

	slides := p.partsWithPrefix("ppt/slides/slide", ".xml")
	if len(slides) != len(pres.Slides) {
		t.Fatalf("slide count = %d, want %d", len(slides), len(pres.Slides))
	}
	for i, slide := range pres.Slides {
		sld := readSlidePart(t, p, i+1)
		if got := len(sld.CSld.SpTree.Shapes); got != len(slide.Elements) {
			t.Errorf("slide %d shape count = %d, want %d", i+1, got, len(slide.Elements))
		}
	}
}

func TestBuildPreservesSlideOrder(t *testing.T) {
	pres := testPresentation(textSlide("first"), textSlide("second"), textSlide("third"))
	_, p := buildFile(t, pres, "")

	want := []string{"first", "second", "third"}
	for i, content := range want {
		sld := readSlidePart(t, p, i+1)
		runs := sld.CSld.SpTree.Shapes[0].TxBody.Paragraphs[0].Runs
		if len(runs) == 0 || runs[0].T != content {
			t.Errorf("slide %d content = %v, want %q", i+1, runs, content)
		}
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	pres := testPresentation(ir.Slide{
		Layout: ir.LayoutBlank,
		Elements: []ir.Element{
			&ir.TextBox{Content: "placed", X: 1.0, Y: 1.5, Width: 8.0, Height: 5.0, FontSize: 18},
		},
	})
	_, p := buildFile(t, pres, "")

	sld := readSlidePart(t, p, 1)
	xfrm := sld.CSld.SpTree.Shapes[0].SpPr.Xfrm
	if xfrm == nil {
		t.Fatal("shape has no transform")
	}

	checks := []struct {
		name   string
		got    int64
		inches float64
	}{
		{"x", xfrm.Off.X, 1.0},
		{"y", xfrm.Off.Y, 1.5},
		{"width", xfrm.Ext.Cx, 8.0},
		{"height", xfrm.Ext.Cy, 5.0},
	}
	for _, c := range checks {
		want := emu(c.inches)
		if diff := c.got - want; diff < -1 || diff > 1 {
			t.Errorf("%s = %d EMU, want %d", c.name, c.got, want)
		}
	}
}

func TestTextFormatting(t *testing.T) {
	pres := testPresentation(ir.Slide{
		Layout: ir.LayoutBlank,
		Elements: []ir.Element{
			&ir.TextBox{
				Content: "styled", X: 1, Y: 1, Width: 5, Height: 1,
				FontName: "Georgia", FontSize: 24, FontBold: true, FontItalic: true,
				FontColor: "#1a73e8", Alignment: ir.AlignCenter, VerticalAlignment: ir.VAlignMiddle,
			},
		},
	})
	_, p := buildFile(t, pres, "")

	sld := readSlidePart(t, p, 1)
	sp := sld.CSld.SpTree.Shapes[0]
	if sp.TxBody.BodyPr.Anchor != "ctr" {
		t.Errorf("anchor = %q, want ctr", sp.TxBody.BodyPr.Anchor)
	}
	para := sp.TxBody.Paragraphs[0]
	if para.PPr == nil || para.PPr.Algn != "ctr" {
		t.Errorf("algn = %v, want ctr", para.PPr)
	}
	rpr := para.Runs[0].RPr
	if rpr.Sz != 2400 {
		t.Errorf("sz = %d, want 2400", rpr.Sz)
	}
	if rpr.B == nil || *rpr.B != 1 {
		t.Error("bold not set")
	}
	if rpr.I == nil || *rpr.I != 1 {
		t.Error("italic not set")
	}
	if rpr.SolidFill == nil || rpr.SolidFill.SrgbClr == nil || rpr.SolidFill.SrgbClr.Val != "1A73E8" {
		t.Errorf("color = %v, want 1A73E8", rpr.SolidFill)
	}
	if rpr.Latin == nil || rpr.Latin.Typeface != "Georgia" {
		t.Errorf("typeface = %v, want Georgia", rpr.Latin)
	}
}

func TestChartRendersAsTable(t *testing.T) {
	raw := []byte(`{
		"title": "Numbers",
		"slides": [{
			"layout": "title_content",
			"elements": [{
				"type": "chart",
				"title": "Sales",
				"categories": ["Q1", "Q2"],
				"series": [{"name": "Revenue", "values": [10, 20]}],
				"x": 1, "y": 1.5, "width": 8, "height": 5
			}]
		}]
	}`)
	pres, err := ir.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	_, p := buildFile(t, pres, "")
	sld := readSlidePart(t, p, 1)

	if len(sld.CSld.SpTree.GraphicFrames) != 1 {
		t.Fatalf("graphic frame count = %d, want 1", len(sld.CSld.SpTree.GraphicFrames))
	}
	tbl := sld.CSld.SpTree.GraphicFrames[0].Graphic.GraphicData.Table
	if tbl == nil {
		t.Fatal("graphic frame holds no table")
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(tbl.Rows))
	}
	if len(tbl.Rows[0].Cells) != 3 || len(tbl.Grid.Cols) != 3 {
		t.Fatalf("column count = %d (grid %d), want 3", len(tbl.Rows[0].Cells), len(tbl.Grid.Cols))
	}
	if got := cellText(tbl.Rows[1].Cells[2]); got != "20" {
		t.Errorf("cell (1,2) = %q, want %q", got, "20")
	}
	if got := cellText(tbl.Rows[0].Cells[0]); got != "Sales" {
		t.Errorf("cell (0,0) = %q, want %q", got, "Sales")
	}
	if got := cellText(tbl.Rows[1].Cells[0]); got != "Revenue" {
		t.Errorf("cell (1,0) = %q, want %q", got, "Revenue")
	}
}

func cellText(tc tcXML) string {
	if tc.TxBody == nil {
		return ""
	}
	var buf bytes.Buffer
	for _, para := range tc.TxBody.Paragraphs {
		for _, run := range para.Runs {
			buf.WriteString(run.T)
		}
	}
	return buf.String()
}

func TestChartWithoutCategoriesRendersTitleOnly(t *testing.T) {
	pres := testPresentation(ir.Slide{
		Layout: ir.LayoutTitleContent,
		Elements: []ir.Element{
			&ir.ChartElement{
				Title:  "Orphan",
				Series: []ir.Series{{Name: "Revenue", Values: []any{json.Number("10")}}},
				X:      1, Y: 1.5, Width: 8, Height: 5,
			},
		},
	})
	_, p := buildFile(t, pres, "")
	sld := readSlidePart(t, p, 1)

	if len(sld.CSld.SpTree.GraphicFrames) != 0 {
		t.Errorf("graphic frame count = %d, want 0", len(sld.CSld.SpTree.GraphicFrames))
	}
	if len(sld.CSld.SpTree.Shapes) != 1 {
		t.Fatalf("shape count = %d, want 1", len(sld.CSld.SpTree.Shapes))
	}
	sp := sld.CSld.SpTree.Shapes[0]
	if got := sp.TxBody.Paragraphs[0].Runs[0].T; got != "Orphan" {
		t.Errorf("title = %q, want Orphan", got)
	}
	if h := sp.SpPr.Xfrm.Ext.Cy; h != emu(0.5) {
		t.Errorf("title box height = %d, want %d", h, emu(0.5))
	}
	if b := sp.TxBody.Paragraphs[0].Runs[0].RPr.B; b == nil || *b != 1 {
		t.Error("title not bold")
	}
}

func TestUnreachableImageBecomesPlaceholder(t *testing.T) {
	pres := testPresentation(ir.Slide{
		Layout: ir.LayoutBlank,
		Elements: []ir.Element{
			&ir.ImageElement{URL: "http://127.0.0.1:1/nope.png", X: 1, Y: 1, Width: 4, Height: 3},
		},
	})
	_, p := buildFile(t, pres, "")
	sld := readSlidePart(t, p, 1)

	if len(sld.CSld.SpTree.Pictures) != 0 {
		t.Errorf("picture count = %d, want 0", len(sld.CSld.SpTree.Pictures))
	}
	if len(sld.CSld.SpTree.Shapes) != 1 {
		t.Fatalf("shape count = %d, want 1", len(sld.CSld.SpTree.Shapes))
	}
	got := sld.CSld.SpTree.Shapes[0].TxBody.Paragraphs[0].Runs[0].T
	if !bytes.Contains([]byte(got), []byte("unavailable")) {
		t.Errorf("placeholder text = %q, want substring %q", got, "unavailable")
	}
}

func TestImageFetchedOverHTTP(t *testing.T) {
	// Enough of a PNG for content sniffing.
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	pres := testPresentation(ir.Slide{
		Layout: ir.LayoutImageFull,
		Elements: []ir.Element{
			&ir.ImageElement{URL: srv.URL + "/pic.png", AltText: "a picture", X: 0, Y: 0, Width: 13.333, Height: 7.5},
		},
	})
	_, p := buildFile(t, pres, "")
	sld := readSlidePart(t, p, 1)

	if len(sld.CSld.SpTree.Pictures) != 1 {
		t.Fatalf("picture count = %d, want 1", len(sld.CSld.SpTree.Pictures))
	}
	media := p.partsWithPrefix("ppt/media/image_s", ".png")
	if len(media) != 1 {
		t.Fatalf("media part count = %d, want 1", len(media))
	}
	data, _ := p.get(media[0])
	if !bytes.Equal(data, png) {
		t.Error("embedded image bytes differ from served bytes")
	}
}

func TestImageContentTypeDefaultRegistered(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(png)
	}))
	defer srv.Close()

	imgSlide := ir.Slide{
		Layout: ir.LayoutBlank,
		Elements: []ir.Element{
			&ir.ImageElement{URL: srv.URL + "/pic.png", X: 1, Y: 1, Width: 4, Height: 3},
		},
	}

	pngDefaults := func(p *pkg) int {
		ct, err := readContentTypes(p)
		if err != nil {
			t.Fatalf("readContentTypes: %v", err)
		}
		n := 0
		for _, d := range ct.Defaults {
			if d.Extension == "png" {
				n++
			}
		}
		return n
	}

	t.Run("added for templates without image defaults", func(t *testing.T) {
		template, _ := buildFile(t, testPresentation(textSlide("base")), "")
		p, err := openPkg(template)
		if err != nil {
			t.Fatal(err)
		}
		ct, err := readContentTypes(p)
		if err != nil {
			t.Fatal(err)
		}
		kept := ct.Defaults[:0]
		for _, d := range ct.Defaults {
			if strings.HasPrefix(d.ContentType, "image/") {
				continue
			}
			kept = append(kept, d)
		}
		ct.Defaults = kept
		if err := setXMLPart(p, "[Content_Types].xml", ct); err != nil {
			t.Fatal(err)
		}
		if err := p.save(template); err != nil {
			t.Fatal(err)
		}

		_, out := buildFile(t, testPresentation(imgSlide), template)
		if got := pngDefaults(out); got != 1 {
			t.Errorf("png Default count = %d, want 1", got)
		}
	})

	t.Run("not duplicated when already declared", func(t *testing.T) {
		_, out := buildFile(t, testPresentation(imgSlide), "")
		if got := pngDefaults(out); got != 1 {
			t.Errorf("png Default count = %d, want 1", got)
		}
		if len(out.partsWithPrefix("ppt/media/image_s", ".png")) != 1 {
			t.Error("embedded image part missing")
		}
	})
}

func TestSpeakerNotesEmitted(t *testing.T) {
	slide := textSlide("body")
	slide.SpeakerNotes = "remember to pause"
	pres := testPresentation(slide)
	_, p := buildFile(t, pres, "")

	data, ok := p.get("ppt/notesSlides/notesSlide1.xml")
	if !ok {
		t.Fatal("notes slide part missing")
	}
	var notes notesXML
	if err := xml.Unmarshal(data, &notes); err != nil {
		t.Fatalf("parsing notes: %v", err)
	}
	got := notes.CSld.SpTree.Shapes[0].TxBody.Paragraphs[0].Runs[0].T
	if got != "remember to pause" {
		t.Errorf("notes text = %q", got)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	pres := testPresentation(textSlide("same"), textSlide("again"))

	_, p1 := buildFile(t, pres, "")
	_, p2 := buildFile(t, pres, "")

	for _, name := range p1.partsWithPrefix("ppt/slides/slide", ".xml") {
		a, _ := p1.get(name)
		b, ok := p2.get(name)
		if !ok {
			t.Fatalf("second build missing %s", name)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("part %s differs between builds", name)
		}
	}
}

func TestTemplateSlidesAreStripped(t *testing.T) {
	// First build serves as the template for the second.
	template, _ := buildFile(t, testPresentation(textSlide("old one"), textSlide("old two"), textSlide("old three")), "")

	pres := testPresentation(textSlide("fresh"))
	_, p := buildFile(t, pres, template)

	slides := p.partsWithPrefix("ppt/slides/slide", ".xml")
	if len(slides) != 1 {
		t.Fatalf("slide count = %d, want 1", len(slides))
	}
	sld := readSlidePart(t, p, 1)
	if got := sld.CSld.SpTree.Shapes[0].TxBody.Paragraphs[0].Runs[0].T; got != "fresh" {
		t.Errorf("slide content = %q, want fresh", got)
	}
	if !p.has("ppt/slideMasters/slideMaster1.xml") {
		t.Error("template slide master was not preserved")
	}
	if !p.has("ppt/theme/theme1.xml") {
		t.Error("template theme was not preserved")
	}
}

func TestMissingTemplateFallsBackToBlank(t *testing.T) {
	pres := testPresentation(textSlide("ok"))
	out := filepath.Join(t.TempDir(), "deck.pptx")
	if _, err := NewBuilder(nil).Build(pres, out, filepath.Join(t.TempDir(), "no-such.pptx")); err != nil {
		t.Fatalf("Build with missing template: %v", err)
	}
}

func TestCorruptTemplateIsFatal(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.pptx")
	if err := os.WriteFile(bad, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	pres := testPresentation(textSlide("ok"))
	out := filepath.Join(t.TempDir(), "deck.pptx")
	if _, err := NewBuilder(nil).Build(pres, out, bad); err == nil {
		t.Fatal("expected error for corrupt template")
	}
}

func TestBackgroundColorApplied(t *testing.T) {
	slide := textSlide("tinted")
	slide.BackgroundColor = "#e8710a"
	pres := testPresentation(slide)
	_, p := buildFile(t, pres, "")

	sld := readSlidePart(t, p, 1)
	bg := sld.CSld.Bg
	if bg == nil || bg.BgPr == nil || bg.BgPr.SolidFill == nil || bg.BgPr.SolidFill.SrgbClr == nil {
		t.Fatal("slide has no solid background fill")
	}
	if got := bg.BgPr.SolidFill.SrgbClr.Val; got != "E8710A" {
		t.Errorf("background = %q, want E8710A", got)
	}
}
