// Package ir defines the intermediate representation for a presentation:
// the typed, validated document tree that sits between generation and
// rendering. An IR value is constructed wholesale from a single generation
// or refinement response and is treated as immutable by consumers.
package ir

// Canvas dimensions for a 16:9 widescreen deck, in inches. All element
// geometry is expressed relative to this canvas.
const (
	CanvasWidthInches  = 13.333
	CanvasHeightInches = 7.5
)

// Font size bounds in points, enforced at validation.
const (
	MinFontSize = 6
	MaxFontSize = 96
)

// HorizontalAlignment is the paragraph alignment within a text frame.
type HorizontalAlignment string

const (
	AlignLeft   HorizontalAlignment = "left"
	AlignCenter HorizontalAlignment = "center"
	AlignRight  HorizontalAlignment = "right"
)

// VerticalAlignment anchors text within its frame.
type VerticalAlignment string

const (
	VAlignTop    VerticalAlignment = "top"
	VAlignMiddle VerticalAlignment = "middle"
	VAlignBottom VerticalAlignment = "bottom"
)

// ChartType categorizes chart data. Advisory only: charts render as tables
// regardless of type.
type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
)

// LayoutType is the semantic layout category for a slide. The compiler maps
// it onto a named layout from the base document.
type LayoutType string

const (
	LayoutTitle         LayoutType = "title"
	LayoutTitleContent  LayoutType = "title_content"
	LayoutTwoColumn     LayoutType = "two_column"
	LayoutBlank         LayoutType = "blank"
	LayoutSectionHeader LayoutType = "section_header"
	LayoutImageFull     LayoutType = "image_full"
)

// ElementType discriminates the slide element union.
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
	ElementChart ElementType = "chart"
)

// Element is the closed union of slide element kinds. The Kind method is
// the discriminant; consumers switch exhaustively on the concrete type.
type Element interface {
	Kind() ElementType
}

// TextBox is a positioned text frame with a single paragraph of content.
type TextBox struct {
	Type    ElementType `json:"type"`
	Content string      `json:"content"`
	IsTitle bool        `json:"is_title"`

	// Position and size in inches from the slide's top-left corner.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	FontName   string `json:"font_name"`
	FontSize   int    `json:"font_size"`
	FontBold   bool   `json:"font_bold"`
	FontItalic bool   `json:"font_italic"`
	FontColor  string `json:"font_color"`

	Alignment         HorizontalAlignment `json:"alignment"`
	VerticalAlignment VerticalAlignment   `json:"vertical_alignment"`
}

// Kind implements Element.
func (t *TextBox) Kind() ElementType { return ElementText }

// ImageElement is a positioned picture sourced from a URL or a local path.
// Having neither set is structurally valid; the compiler substitutes a
// placeholder at render time.
type ImageElement struct {
	Type    ElementType `json:"type"`
	URL     string      `json:"url,omitempty"`
	Path    string      `json:"path,omitempty"`
	AltText string      `json:"alt_text"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Kind implements Element.
func (i *ImageElement) Kind() ElementType { return ElementImage }

// Series is one data series of a chart: a name plus ordered values in
// category order. Values hold numbers or strings and are coerced to text
// when the chart is rendered as a table.
type Series struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// ChartElement is chart data rendered as a table. Native chart objects are
// intentionally out of scope.
type ChartElement struct {
	Type       ElementType `json:"type"`
	ChartType  ChartType   `json:"chart_type"`
	Title      string      `json:"title"`
	Categories []string    `json:"categories"`
	Series     []Series    `json:"series"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Kind implements Element.
func (c *ChartElement) Kind() ElementType { return ElementChart }

// Slide is a single slide: a layout category, background color, ordered
// elements, and optional speaker notes.
type Slide struct {
	Layout          LayoutType `json:"layout"`
	BackgroundColor string     `json:"background_color"`
	Elements        []Element  `json:"elements"`
	SpeakerNotes    string     `json:"speaker_notes"`
}

// ThemeSettings holds the deck-wide palette and font pair.
type ThemeSettings struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	BackgroundColor string `json:"background_color"`
	FontHeading     string `json:"font_heading"`
	FontBody        string `json:"font_body"`
}

// Presentation is the root of the IR tree. Slide order is presentation
// order; no transform may omit or reorder slides.
type Presentation struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Author   string        `json:"author"`
	Theme    ThemeSettings `json:"theme"`
	Slides   []Slide       `json:"slides"`
}

// DesignTokens is the constrained style fragment recovered from an existing
// presentation file, used to constrain subsequent generation.
type DesignTokens struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	BackgroundColor string `json:"background_color"`
	FontHeading     string `json:"font_heading"`
	FontBody        string `json:"font_body"`

	// LayoutNames preserves the base document's native layout order,
	// duplicates included (layouts can share a display name).
	LayoutNames []string `json:"layout_names"`

	// ExtractedColors and ExtractedFonts are sets rendered as sorted
	// sequences of unique values.
	ExtractedColors []string `json:"extracted_colors"`
	ExtractedFonts  []string `json:"extracted_fonts"`
}

// Style extraction defaults, used when a scanned document yields nothing.
const (
	DefaultPrimaryColor    = "#1a73e8"
	DefaultSecondaryColor  = "#e8710a"
	DefaultBackgroundColor = "#ffffff"
	DefaultFont            = "Calibri"
)

// DefaultTheme returns the theme applied when generation supplies none.
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:    DefaultPrimaryColor,
		SecondaryColor:  DefaultSecondaryColor,
		BackgroundColor: DefaultBackgroundColor,
		FontHeading:     DefaultFont,
		FontBody:        DefaultFont,
	}
}

// DefaultTokens returns design tokens with every field at its fixed default.
func DefaultTokens() *DesignTokens {
	return &DesignTokens{
		PrimaryColor:    DefaultPrimaryColor,
		SecondaryColor:  DefaultSecondaryColor,
		BackgroundColor: DefaultBackgroundColor,
		FontHeading:     DefaultFont,
		FontBody:        DefaultFont,
	}
}
