package pptx

import (
	"bytes"
	"testing"
)

func TestReplaceSlideIDList(t *testing.T) {
	t.Run("paired element", func(t *testing.T) {
		doc := []byte(`<p:presentation><p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst><p:sldSz cx="1" cy="1"/></p:presentation>`)
		got, err := replaceSlideIDList(doc, "")
		if err != nil {
			t.Fatal(err)
		}
		want := []byte(`<p:presentation><p:sldIdLst/><p:sldSz cx="1" cy="1"/></p:presentation>`)
		if !bytes.Equal(got, want) {
			t.Errorf("got %s", got)
		}
	})

	t.Run("self closing", func(t *testing.T) {
		doc := []byte(`<p:presentation><p:sldIdLst/></p:presentation>`)
		got, err := replaceSlideIDList(doc, `<p:sldId id="256" r:id="rId9"/>`)
		if err != nil {
			t.Fatal(err)
		}
		want := []byte(`<p:presentation><p:sldIdLst><p:sldId id="256" r:id="rId9"/></p:sldIdLst></p:presentation>`)
		if !bytes.Equal(got, want) {
			t.Errorf("got %s", got)
		}
	})

	t.Run("missing element", func(t *testing.T) {
		if _, err := replaceSlideIDList([]byte(`<p:presentation/>`), ""); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestRelsPartFor(t *testing.T) {
	cases := map[string]string{
		"ppt/slides/slide1.xml":      "ppt/slides/_rels/slide1.xml.rels",
		"ppt/presentation.xml":       "ppt/_rels/presentation.xml.rels",
		"ppt/notesSlides/notesSlide3.xml": "ppt/notesSlides/_rels/notesSlide3.xml.rels",
	}
	for in, want := range cases {
		if got := relsPartFor(in); got != want {
			t.Errorf("relsPartFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLayoutsFollowMasterDeclaredOrder(t *testing.T) {
	p := newPkg()
	p.set("ppt/presentation.xml", []byte(blankPresentationXML))

	presRels := relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		},
	}
	if err := setXMLPart(p, "ppt/_rels/presentation.xml.rels", presRels); err != nil {
		t.Fatal(err)
	}

	// The master lists layout 2 before layout 1, the opposite of
	// part-number order.
	master := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId2"/><p:sldLayoutId id="2147483650" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`
	p.set("ppt/slideMasters/slideMaster1.xml", []byte(master))

	masterRels := relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
			{ID: "rId2", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout2.xml"},
		},
	}
	if err := setXMLPart(p, "ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels); err != nil {
		t.Fatal(err)
	}

	p.set("ppt/slideLayouts/slideLayout1.xml", []byte(blankLayoutXML("First Part")))
	p.set("ppt/slideLayouts/slideLayout2.xml", []byte(blankLayoutXML("Second Part")))

	refs, err := layouts(p)
	if err != nil {
		t.Fatalf("layouts: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("layout count = %d, want 2", len(refs))
	}
	if refs[0].name != "Second Part" || refs[1].name != "First Part" {
		t.Errorf("order = [%s, %s], want master order [Second Part, First Part]", refs[0].name, refs[1].name)
	}
}

func TestLayoutsFallBackToPartOrderWithoutMaster(t *testing.T) {
	p := newPkg()
	p.set("ppt/slideLayouts/slideLayout2.xml", []byte(blankLayoutXML("Two")))
	p.set("ppt/slideLayouts/slideLayout1.xml", []byte(blankLayoutXML("One")))

	refs, err := layouts(p)
	if err != nil {
		t.Fatalf("layouts: %v", err)
	}
	if refs[0].name != "One" || refs[1].name != "Two" {
		t.Errorf("order = [%s, %s], want [One, Two]", refs[0].name, refs[1].name)
	}
}

func TestPartsWithPrefixNumericOrder(t *testing.T) {
	p := newPkg()
	for _, n := range []string{
		"ppt/slides/slide10.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		p.set(n, nil)
	}
	got := p.partsWithPrefix("ppt/slides/slide", ".xml")
	want := []string{"ppt/slides/slide1.xml", "ppt/slides/slide2.xml", "ppt/slides/slide10.xml"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %q, want %q", i, got[i], want[i])
		}
	}
}
