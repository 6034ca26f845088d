package ir

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDecodeAppliesDefaults(t *testing.T) {
	raw := []byte(`{
		"title": "Minimal",
		"slides": [
			{"elements": [{"type": "text", "content": "hello"}]}
		]
	}`)

	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if p.Author != "deckgen" {
		t.Errorf("author = %q, want default", p.Author)
	}
	if p.Theme != DefaultTheme() {
		t.Errorf("theme = %+v, want defaults", p.Theme)
	}

	slide := p.Slides[0]
	if slide.Layout != LayoutTitleContent {
		t.Errorf("layout = %q, want title_content", slide.Layout)
	}
	if slide.BackgroundColor != "#ffffff" {
		t.Errorf("background = %q, want #ffffff", slide.BackgroundColor)
	}

	tb, ok := slide.Elements[0].(*TextBox)
	if !ok {
		t.Fatalf("element type = %T, want *TextBox", slide.Elements[0])
	}
	if tb.Content != "hello" {
		t.Errorf("content = %q", tb.Content)
	}
	if tb.X != 0.5 || tb.Y != 0.5 || tb.Width != 9.0 || tb.Height != 1.0 {
		t.Errorf("geometry = (%g,%g,%g,%g), want defaults", tb.X, tb.Y, tb.Width, tb.Height)
	}
	if tb.FontName != DefaultFont || tb.FontSize != 18 || tb.FontColor != "#333333" {
		t.Errorf("font = %q/%d/%q, want defaults", tb.FontName, tb.FontSize, tb.FontColor)
	}
	if tb.Alignment != AlignLeft || tb.VerticalAlignment != VAlignTop {
		t.Errorf("alignment = %q/%q, want left/top", tb.Alignment, tb.VerticalAlignment)
	}
}

func TestDecodeNormalizesColors(t *testing.T) {
	raw := []byte(`{
		"title": "Colors",
		"theme": {"primary_color": "#1A73E8"},
		"slides": [{"background_color": "E8710A"}]
	}`)

	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Theme.PrimaryColor != "#1a73e8" {
		t.Errorf("primary = %q, want #1a73e8", p.Theme.PrimaryColor)
	}
	if p.Slides[0].BackgroundColor != "#e8710a" {
		t.Errorf("background = %q, want #e8710a", p.Slides[0].BackgroundColor)
	}
}

func TestDecodeChartValuesKeepLiteralForm(t *testing.T) {
	raw := []byte(`{
		"title": "Chart",
		"slides": [{
			"elements": [{
				"type": "chart",
				"categories": ["a", "b", "c"],
				"series": [{"name": "s", "values": [10, 20.5, "n/a"]}]
			}]
		}]
	}`)

	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	chart := p.Slides[0].Elements[0].(*ChartElement)
	if chart.ChartType != ChartBar {
		t.Errorf("chart_type = %q, want default bar", chart.ChartType)
	}
	values := chart.Series[0].Values
	if n, ok := values[0].(json.Number); !ok || n.String() != "10" {
		t.Errorf("values[0] = %#v, want json.Number 10", values[0])
	}
	if n, ok := values[1].(json.Number); !ok || n.String() != "20.5" {
		t.Errorf("values[1] = %#v, want json.Number 20.5", values[1])
	}
	if s, ok := values[2].(string); !ok || s != "n/a" {
		t.Errorf("values[2] = %#v, want string n/a", values[2])
	}
}

func TestDecodeImageWithoutSourceIsValid(t *testing.T) {
	raw := []byte(`{
		"title": "Sparse",
		"slides": [{"elements": [{"type": "image", "alt_text": "tbd"}]}]
	}`)
	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	img := p.Slides[0].Elements[0].(*ImageElement)
	if img.URL != "" || img.Path != "" {
		t.Errorf("sources = %q/%q, want empty", img.URL, img.Path)
	}
	if img.AltText != "tbd" {
		t.Errorf("alt_text = %q", img.AltText)
	}
}

func TestDecodeRejectsUnknownElementType(t *testing.T) {
	raw := []byte(`{
		"title": "Bad",
		"slides": [{"elements": [{"type": "video"}]}]
	}`)
	if _, err := Decode(raw); err == nil {
		t.Fatal("expected error for unknown element type")
	}
}

func TestDecodeRejectsOutOfRangeFontSize(t *testing.T) {
	raw := []byte(`{
		"title": "Bad",
		"slides": [{"elements": [{"type": "text", "content": "x", "font_size": 200}]}]
	}`)
	_, err := Decode(raw)
	if err == nil {
		t.Fatal("expected error for font_size 200")
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	if !strings.Contains(err.Error(), "font_size") {
		t.Errorf("error %q does not name the offending field", err)
	}
}

func TestDecodeRejectsMissingTitle(t *testing.T) {
	if _, err := Decode([]byte(`{"slides": []}`)); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode([]byte(`{"title": `)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
