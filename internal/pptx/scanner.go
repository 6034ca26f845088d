package pptx

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackzampolin/deckgen/internal/ir"
)

// Scanner recovers design tokens from an existing .pptx: the colors and
// fonts its slides actually use, plus the native layout name order.
type Scanner struct {
	logger *slog.Logger
}

func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// Scan extracts design tokens from the file at path. A malformed slide or
// shape excludes itself from the result but never fails the scan; only an
// unopenable file does.
func (s *Scanner) Scan(path string) (*ir.DesignTokens, error) {
	p, err := openPkg(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presentation: %w", err)
	}

	colors := newStringSet()
	fonts := newStringSet()

	for _, part := range p.partsWithPrefix("ppt/slides/slide", ".xml") {
		data, _ := p.get(part)
		var sld slideXML
		if err := xml.Unmarshal(data, &sld); err != nil {
			s.logger.Warn("skipping unreadable slide", "part", part, "error", err)
			continue
		}
		if bg := sld.CSld.Bg; bg != nil && bg.BgPr != nil {
			collectFill(colors, bg.BgPr.SolidFill)
		}
		collectTree(colors, fonts, &sld.CSld.SpTree)
	}

	tokens := ir.DefaultTokens()
	tokens.ExtractedColors = colors.sorted()
	tokens.ExtractedFonts = fonts.sorted()

	if len(tokens.ExtractedColors) > 0 {
		tokens.PrimaryColor = tokens.ExtractedColors[0]
	}
	if len(tokens.ExtractedColors) > 1 {
		tokens.SecondaryColor = tokens.ExtractedColors[1]
	}
	// BackgroundColor stays at its default: shape-level inspection cannot
	// reliably recover it.

	switch len(tokens.ExtractedFonts) {
	case 0:
	case 1:
		tokens.FontHeading = tokens.ExtractedFonts[0]
		tokens.FontBody = tokens.ExtractedFonts[0]
	default:
		tokens.FontHeading = tokens.ExtractedFonts[0]
		tokens.FontBody = tokens.ExtractedFonts[1]
	}

	refs, err := layouts(p)
	if err == nil {
		for _, ref := range refs {
			tokens.LayoutNames = append(tokens.LayoutNames, ref.name)
		}
	} else {
		s.logger.Warn("no readable layouts in presentation", "path", path, "error", err)
	}

	s.logger.Info("presentation scanned",
		"path", path,
		"colors", len(tokens.ExtractedColors),
		"fonts", len(tokens.ExtractedFonts),
		"layouts", len(tokens.LayoutNames))
	return tokens, nil
}

// collectTree walks a shape tree, group shapes included.
func collectTree(colors, fonts *stringSet, tree *spTreeXML) {
	for i := range tree.Shapes {
		collectShape(colors, fonts, &tree.Shapes[i])
	}
	for i := range tree.Groups {
		collectGroup(colors, fonts, &tree.Groups[i])
	}
}

func collectGroup(colors, fonts *stringSet, grp *grpSpXML) {
	for i := range grp.Shapes {
		collectShape(colors, fonts, &grp.Shapes[i])
	}
	for i := range grp.Groups {
		collectGroup(colors, fonts, &grp.Groups[i])
	}
}

func collectShape(colors, fonts *stringSet, sp *spXML) {
	collectFill(colors, sp.SpPr.SolidFill)
	if sp.TxBody == nil {
		return
	}
	for _, para := range sp.TxBody.Paragraphs {
		for _, run := range para.Runs {
			if run.RPr == nil {
				continue
			}
			collectFill(colors, run.RPr.SolidFill)
			if run.RPr.Latin != nil && run.RPr.Latin.Typeface != "" {
				fonts.add(run.RPr.Latin.Typeface)
			}
		}
	}
}

func collectFill(colors *stringSet, fill *solidFillXML) {
	if fill == nil || fill.SrgbClr == nil {
		return
	}
	hex, err := ir.NormalizeHex(fill.SrgbClr.Val)
	if err != nil {
		return
	}
	colors.add(hex)
}

// stringSet is an insertion-agnostic set rendered as a sorted slice.
// Color values are normalized before insertion, so case-insensitive
// duplicates collapse to one entry.
type stringSet struct {
	seen map[string]struct{}
}

func newStringSet() *stringSet {
	return &stringSet{seen: make(map[string]struct{})}
}

func (s *stringSet) add(v string) {
	s.seen[v] = struct{}{}
}

func (s *stringSet) sorted() []string {
	out := make([]string, 0, len(s.seen))
	for v := range s.seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
