package pptx

import "github.com/jackzampolin/deckgen/internal/ir"

// layoutPriority maps each semantic layout category to the ordered list of
// base-document layout names to search for.
var layoutPriority = map[ir.LayoutType][]string{
	ir.LayoutTitle:         {"Title Slide", "Title"},
	ir.LayoutTitleContent:  {"Title and Content", "Title, Content"},
	ir.LayoutTwoColumn:     {"Two Content", "Comparison"},
	ir.LayoutSectionHeader: {"Section Header"},
	ir.LayoutBlank:         {"Blank"},
	ir.LayoutImageFull:     {"Blank", "Picture with Caption"},
}

// blankLayoutIndex is the position of the blank layout in a stock
// presentation, used as the first fallback when no name matches.
const blankLayoutIndex = 6

// resolveLayout maps a semantic layout onto one of the base document's
// layouts: first matching name from the priority list, then the layout at
// the blank index, then the last layout. Total for any non-empty layout
// set.
func resolveLayout(refs []layoutRef, lt ir.LayoutType) layoutRef {
	for _, want := range layoutPriority[lt] {
		for _, ref := range refs {
			if ref.name == want {
				return ref
			}
		}
	}
	if blankLayoutIndex < len(refs) {
		return refs[blankLayoutIndex]
	}
	return refs[len(refs)-1]
}
