package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// layoutRef is a slide layout discovered in a package: its display name and
// part path, in the package's native layout order.
type layoutRef struct {
	name string
	part string
}

// loadTemplate opens a .pptx to be used as a design template and removes
// its existing slides. Masters, layouts, theme and media survive, so decks
// built on top inherit the template's look.
func loadTemplate(path string) (*pkg, error) {
	p, err := openPkg(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	if err := stripSlides(p); err != nil {
		return nil, fmt.Errorf("failed to prepare template: %w", err)
	}
	return p, nil
}

// stripSlides removes every slide and notes slide from the package along
// with their relationships and content-type overrides.
func stripSlides(p *pkg) error {
	doc, ok := p.get("ppt/presentation.xml")
	if !ok {
		return fmt.Errorf("missing ppt/presentation.xml")
	}
	if !bytes.Contains(doc, []byte("<p:sldMasterIdLst")) {
		return fmt.Errorf("presentation has no slide master list")
	}
	cleared, err := replaceSlideIDList(doc, "")
	if err != nil {
		return err
	}
	p.set("ppt/presentation.xml", cleared)

	// Drop the slide parts themselves.
	for _, name := range append(p.partsWithPrefix("ppt/slides/", ".xml"), p.partsWithPrefix("ppt/notesSlides/", ".xml")...) {
		p.delete(name)
		p.delete(relsPartFor(name))
	}

	// Drop slide relationships from the presentation rels.
	rels, err := readRels(p, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return err
	}
	kept := rels.Relationships[:0]
	for _, r := range rels.Relationships {
		if r.Type == relTypeSlide {
			continue
		}
		kept = append(kept, r)
	}
	rels.Relationships = kept
	if err := setXMLPart(p, "ppt/_rels/presentation.xml.rels", rels); err != nil {
		return err
	}

	// Drop slide overrides from the content types.
	ct, err := readContentTypes(p)
	if err != nil {
		return err
	}
	keptOv := ct.Overrides[:0]
	for _, o := range ct.Overrides {
		if strings.HasPrefix(o.PartName, "/ppt/slides/") || strings.HasPrefix(o.PartName, "/ppt/notesSlides/") {
			continue
		}
		keptOv = append(keptOv, o)
	}
	ct.Overrides = keptOv
	return setXMLPart(p, "[Content_Types].xml", ct)
}

// replaceSlideIDList swaps the body of the <p:sldIdLst> element in
// presentation.xml for the given inner XML, handling both the paired and
// self-closing forms.
func replaceSlideIDList(doc []byte, inner string) ([]byte, error) {
	start := bytes.Index(doc, []byte("<p:sldIdLst"))
	if start < 0 {
		return nil, fmt.Errorf("presentation has no slide list element")
	}
	rest := doc[start:]
	openEnd := bytes.IndexByte(rest, '>')
	if openEnd < 0 {
		return nil, fmt.Errorf("malformed slide list element")
	}
	var end int
	if rest[openEnd-1] == '/' {
		end = start + openEnd + 1
	} else {
		closing := bytes.Index(rest, []byte("</p:sldIdLst>"))
		if closing < 0 {
			return nil, fmt.Errorf("malformed slide list element")
		}
		end = start + closing + len("</p:sldIdLst>")
	}

	var repl string
	if inner == "" {
		repl = "<p:sldIdLst/>"
	} else {
		repl = "<p:sldIdLst>" + inner + "</p:sldIdLst>"
	}

	out := make([]byte, 0, len(doc)+len(repl))
	out = append(out, doc[:start]...)
	out = append(out, repl...)
	out = append(out, doc[end:]...)
	return out, nil
}

// layouts lists the slide layouts of the package in the order the slide
// master declares them. A package whose master cannot be resolved falls
// back to part-number order.
func layouts(p *pkg) ([]layoutRef, error) {
	parts := masterLayoutParts(p)
	if len(parts) == 0 {
		parts = p.partsWithPrefix("ppt/slideLayouts/slideLayout", ".xml")
	}

	var refs []layoutRef
	for _, part := range parts {
		data, ok := p.get(part)
		if !ok {
			continue
		}
		var l layoutXML
		if err := xml.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("failed to parse layout %s: %w", part, err)
		}
		refs = append(refs, layoutRef{name: l.CSld.Name, part: part})
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("package has no slide layouts")
	}
	return refs, nil
}

// masterLayoutParts resolves the first slide master's sldLayoutIdLst into
// layout part names, preserving the master's declared order.
func masterLayoutParts(p *pkg) []string {
	presRels, err := readRels(p, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil
	}
	var masterPart string
	for _, r := range presRels.Relationships {
		if r.Type == relTypeSlideMaster {
			masterPart = resolveTarget("ppt", r.Target)
			break
		}
	}
	if masterPart == "" {
		return nil
	}

	data, ok := p.get(masterPart)
	if !ok {
		return nil
	}
	var m masterXML
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil
	}

	rels, err := readRels(p, relsPartFor(masterPart))
	if err != nil {
		return nil
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		targets[r.ID] = r.Target
	}

	var parts []string
	for _, id := range m.LayoutIDs {
		target, ok := targets[id.RID]
		if !ok {
			continue
		}
		parts = append(parts, resolveTarget(path.Dir(masterPart), target))
	}
	return parts
}

// resolveTarget maps a relationship target to a package part name. Targets
// are relative to the source part's directory unless they start with "/".
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

// relsPartFor maps a part name to its relationships part,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPartFor(name string) string {
	i := strings.LastIndexByte(name, '/')
	return name[:i+1] + "_rels/" + name[i+1:] + ".rels"
}

func readRels(p *pkg, name string) (*relationshipsXML, error) {
	rels := &relationshipsXML{Xmlns: nsPackageRels}
	data, ok := p.get(name)
	if !ok {
		return rels, nil
	}
	if err := xml.Unmarshal(data, rels); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	rels.Xmlns = nsPackageRels
	return rels, nil
}

func readContentTypes(p *pkg) (*contentTypesXML, error) {
	data, ok := p.get("[Content_Types].xml")
	if !ok {
		return nil, fmt.Errorf("missing [Content_Types].xml")
	}
	var ct contentTypesXML
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("failed to parse content types: %w", err)
	}
	ct.Xmlns = nsContentTypes
	return &ct, nil
}
