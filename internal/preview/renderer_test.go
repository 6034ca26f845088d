package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderMissingConverterIsNonFatal(t *testing.T) {
	r := NewRenderer(nil)
	r.soffice = "deckgen-no-such-binary"

	dir := t.TempDir()
	images := r.Render(context.Background(), filepath.Join(dir, "deck.pptx"), filepath.Join(dir, "out"))
	if len(images) != 0 {
		t.Errorf("images = %v, want none", images)
	}
}

func TestRenderCreatesOutputDir(t *testing.T) {
	r := NewRenderer(nil)
	r.soffice = "deckgen-no-such-binary"

	out := filepath.Join(t.TempDir(), "nested", "previews")
	r.Render(context.Background(), "deck.pptx", out)

	if _, err := os.Stat(out); err != nil {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestAvailableReportsMissingTools(t *testing.T) {
	r := NewRenderer(nil)
	r.soffice = "deckgen-no-such-binary"
	if err := r.Available(); err == nil {
		t.Error("expected error for missing binary")
	}

	r.soffice = "ls"
	if err := r.Available(); err != nil {
		t.Errorf("Available: %v", err)
	}
}

func TestPngsInSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"slide-02.png", "slide-01.png", "slide-03.png", "deck.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	images := pngsIn(dir)
	want := []string{
		filepath.Join(dir, "slide-01.png"),
		filepath.Join(dir, "slide-02.png"),
		filepath.Join(dir, "slide-03.png"),
	}
	if len(images) != len(want) {
		t.Fatalf("images = %v, want %v", images, want)
	}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("images[%d] = %q, want %q", i, images[i], want[i])
		}
	}
}
