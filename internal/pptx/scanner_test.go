package pptx

import (
	"reflect"
	"testing"

	"github.com/jackzampolin/deckgen/internal/ir"
)

func TestScanEmptyDocumentReturnsDefaults(t *testing.T) {
	path, _ := buildFile(t, testPresentation(), "")

	tokens, err := NewScanner(nil).Scan(path)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if tokens.PrimaryColor != ir.DefaultPrimaryColor {
		t.Errorf("primary = %q, want %q", tokens.PrimaryColor, ir.DefaultPrimaryColor)
	}
	if tokens.SecondaryColor != ir.DefaultSecondaryColor {
		t.Errorf("secondary = %q, want %q", tokens.SecondaryColor, ir.DefaultSecondaryColor)
	}
	if tokens.BackgroundColor != ir.DefaultBackgroundColor {
		t.Errorf("background = %q, want %q", tokens.BackgroundColor, ir.DefaultBackgroundColor)
	}
	if tokens.FontHeading != ir.DefaultFont || tokens.FontBody != ir.DefaultFont {
		t.Errorf("fonts = %q/%q, want %q", tokens.FontHeading, tokens.FontBody, ir.DefaultFont)
	}
	if len(tokens.ExtractedColors) != 0 {
		t.Errorf("extracted colors = %v, want empty", tokens.ExtractedColors)
	}
	if len(tokens.ExtractedFonts) != 0 {
		t.Errorf("extracted fonts = %v, want empty", tokens.ExtractedFonts)
	}
	if !reflect.DeepEqual(tokens.LayoutNames, blankLayoutNames) {
		t.Errorf("layout names = %v, want native blank order", tokens.LayoutNames)
	}
}

func TestScanCollectsColorsAndFonts(t *testing.T) {
	slide := ir.Slide{
		Layout:          ir.LayoutTitleContent,
		BackgroundColor: "#222222",
		Elements: []ir.Element{
			&ir.TextBox{Content: "a", X: 1, Y: 1, Width: 4, Height: 1, FontSize: 18, FontName: "Georgia", FontColor: "#e8710a"},
			&ir.TextBox{Content: "b", X: 1, Y: 2, Width: 4, Height: 1, FontSize: 18, FontName: "Arial", FontColor: "#1a73e8"},
		},
	}
	path, _ := buildFile(t, testPresentation(slide), "")

	tokens, err := NewScanner(nil).Scan(path)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	wantColors := []string{"#1a73e8", "#222222", "#e8710a"}
	if !reflect.DeepEqual(tokens.ExtractedColors, wantColors) {
		t.Errorf("colors = %v, want %v", tokens.ExtractedColors, wantColors)
	}
	wantFonts := []string{"Arial", "Georgia"}
	if !reflect.DeepEqual(tokens.ExtractedFonts, wantFonts) {
		t.Errorf("fonts = %v, want %v", tokens.ExtractedFonts, wantFonts)
	}
	if tokens.PrimaryColor != "#1a73e8" {
		t.Errorf("primary = %q, want first extracted color", tokens.PrimaryColor)
	}
	if tokens.SecondaryColor != "#222222" {
		t.Errorf("secondary = %q, want second extracted color", tokens.SecondaryColor)
	}
	if tokens.FontHeading != "Arial" || tokens.FontBody != "Georgia" {
		t.Errorf("fonts = %q/%q, want Arial/Georgia", tokens.FontHeading, tokens.FontBody)
	}
	// Background stays at the fixed default regardless of slide fills.
	if tokens.BackgroundColor != ir.DefaultBackgroundColor {
		t.Errorf("background = %q, want default", tokens.BackgroundColor)
	}
}

func TestScanDeduplicatesColorCase(t *testing.T) {
	slide := ir.Slide{
		Layout: ir.LayoutBlank,
		Elements: []ir.Element{
			&ir.TextBox{Content: "a", X: 1, Y: 1, Width: 4, Height: 1, FontSize: 18, FontColor: "#1A73E8"},
			&ir.TextBox{Content: "b", X: 1, Y: 2, Width: 4, Height: 1, FontSize: 18, FontColor: "#1a73e8"},
		},
	}
	path, _ := buildFile(t, testPresentation(slide), "")

	tokens, err := NewScanner(nil).Scan(path)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"#1a73e8"}
	if !reflect.DeepEqual(tokens.ExtractedColors, want) {
		t.Errorf("colors = %v, want %v", tokens.ExtractedColors, want)
	}
}

func TestScanSingleFontServesBothRoles(t *testing.T) {
	slide := ir.Slide{
		Layout: ir.LayoutBlank,
		Elements: []ir.Element{
			&ir.TextBox{Content: "a", X: 1, Y: 1, Width: 4, Height: 1, FontSize: 18, FontName: "Verdana"},
		},
	}
	path, _ := buildFile(t, testPresentation(slide), "")

	tokens, err := NewScanner(nil).Scan(path)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if tokens.FontHeading != "Verdana" || tokens.FontBody != "Verdana" {
		t.Errorf("fonts = %q/%q, want Verdana for both", tokens.FontHeading, tokens.FontBody)
	}
}

func TestScanUnopenableFileFails(t *testing.T) {
	if _, err := NewScanner(nil).Scan("/nonexistent/deck.pptx"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
