package ir

import (
	"fmt"
	"strings"
)

// FieldError describes one violated field constraint.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors aggregates every violated constraint found in a
// document. Validation is total: a document either decodes to a fully valid
// value or fails with the complete violation list.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(v), strings.Join(msgs, "; "))
}

// validator accumulates field errors during a walk of the tree.
type validator struct {
	errs ValidationErrors
}

func (v *validator) addf(path, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) hexColor(path, value string) {
	if _, err := NormalizeHex(value); err != nil {
		v.addf(path, "invalid hex color %q", value)
	}
}

func (v *validator) geometry(path string, x, y, w, h float64) {
	if x < 0 {
		v.addf(path+".x", "must be >= 0, got %g", x)
	}
	if y < 0 {
		v.addf(path+".y", "must be >= 0, got %g", y)
	}
	if w <= 0 {
		v.addf(path+".width", "must be > 0, got %g", w)
	}
	if h <= 0 {
		v.addf(path+".height", "must be > 0, got %g", h)
	}
}

// Validate checks every constraint on the tree and returns a
// ValidationErrors listing all violations, or nil when the document is
// fully valid.
func (p *Presentation) Validate() error {
	v := &validator{}

	if strings.TrimSpace(p.Title) == "" {
		v.addf("title", "must not be empty")
	}
	p.Theme.validate(v, "theme")

	for i := range p.Slides {
		p.Slides[i].validate(v, fmt.Sprintf("slides[%d]", i))
	}

	if len(v.errs) > 0 {
		return v.errs
	}
	return nil
}

func (t *ThemeSettings) validate(v *validator, path string) {
	v.hexColor(path+".primary_color", t.PrimaryColor)
	v.hexColor(path+".secondary_color", t.SecondaryColor)
	v.hexColor(path+".background_color", t.BackgroundColor)
	if strings.TrimSpace(t.FontHeading) == "" {
		v.addf(path+".font_heading", "must not be empty")
	}
	if strings.TrimSpace(t.FontBody) == "" {
		v.addf(path+".font_body", "must not be empty")
	}
}

func (s *Slide) validate(v *validator, path string) {
	switch s.Layout {
	case LayoutTitle, LayoutTitleContent, LayoutTwoColumn, LayoutBlank, LayoutSectionHeader, LayoutImageFull:
	default:
		v.addf(path+".layout", "unknown layout %q", s.Layout)
	}
	v.hexColor(path+".background_color", s.BackgroundColor)

	for i, el := range s.Elements {
		epath := fmt.Sprintf("%s.elements[%d]", path, i)
		switch e := el.(type) {
		case *TextBox:
			e.validate(v, epath)
		case *ImageElement:
			v.geometry(epath, e.X, e.Y, e.Width, e.Height)
		case *ChartElement:
			e.validate(v, epath)
		default:
			v.addf(epath, "unknown element kind %T", el)
		}
	}
}

func (t *TextBox) validate(v *validator, path string) {
	v.geometry(path, t.X, t.Y, t.Width, t.Height)
	if t.FontSize < MinFontSize || t.FontSize > MaxFontSize {
		v.addf(path+".font_size", "must be between %d and %d, got %d", MinFontSize, MaxFontSize, t.FontSize)
	}
	if strings.TrimSpace(t.FontName) == "" {
		v.addf(path+".font_name", "must not be empty")
	}
	v.hexColor(path+".font_color", t.FontColor)
	switch t.Alignment {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		v.addf(path+".alignment", "unknown alignment %q", t.Alignment)
	}
	switch t.VerticalAlignment {
	case VAlignTop, VAlignMiddle, VAlignBottom:
	default:
		v.addf(path+".vertical_alignment", "unknown vertical alignment %q", t.VerticalAlignment)
	}
}

func (c *ChartElement) validate(v *validator, path string) {
	v.geometry(path, c.X, c.Y, c.Width, c.Height)
	switch c.ChartType {
	case ChartBar, ChartLine, ChartPie, ChartDoughnut:
	default:
		v.addf(path+".chart_type", "unknown chart type %q", c.ChartType)
	}
}

// Normalize canonicalizes every hex color in the tree to lowercase
// "#rrggbb" form. Call only on a validated tree.
func (p *Presentation) Normalize() {
	norm := func(s string) string {
		if n, err := NormalizeHex(s); err == nil {
			return n
		}
		return s
	}
	p.Theme.PrimaryColor = norm(p.Theme.PrimaryColor)
	p.Theme.SecondaryColor = norm(p.Theme.SecondaryColor)
	p.Theme.BackgroundColor = norm(p.Theme.BackgroundColor)
	for i := range p.Slides {
		s := &p.Slides[i]
		s.BackgroundColor = norm(s.BackgroundColor)
		for _, el := range s.Elements {
			if tb, ok := el.(*TextBox); ok {
				tb.FontColor = norm(tb.FontColor)
			}
		}
	}
}
