// Package preview renders generated decks to per-slide PNG images using
// LibreOffice and poppler-utils. Rendering is best-effort: any failure is
// logged and an empty result returned, never an error.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Renderer converts .pptx files to slide images. The conversion pipeline is
// pptx -> pdf (LibreOffice headless) -> png per page (pdftoppm).
type Renderer struct {
	logger *slog.Logger

	// Binary names, overridable for testing.
	soffice  string
	pdftoppm string

	// Per-step timeout for external tools.
	timeout time.Duration
}

// NewRenderer creates a renderer. If logger is nil, slog.Default() is used.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		logger:   logger,
		soffice:  "libreoffice",
		pdftoppm: "pdftoppm",
		timeout:  60 * time.Second,
	}
}

// Available reports whether the external tools the renderer shells out to
// are installed. Callers can use this to degrade gracefully at startup.
func (r *Renderer) Available() error {
	if _, err := exec.LookPath(r.soffice); err != nil {
		return fmt.Errorf("libreoffice not found in PATH: %w", err)
	}
	return nil
}

// Render converts the deck at pptxPath into one PNG per slide under
// outputDir, creating the directory if needed. An empty outputDir renders
// into a fresh temp directory. The returned paths are sorted in slide order.
// All failures are non-fatal: the cause is logged and nil returned.
func (r *Renderer) Render(ctx context.Context, pptxPath, outputDir string) []string {
	var err error
	if outputDir == "" {
		outputDir, err = os.MkdirTemp("", "deckgen-preview-*")
	} else {
		err = os.MkdirAll(outputDir, 0o755)
	}
	if err != nil {
		r.logger.Error("failed to create preview directory", "error", err)
		return nil
	}

	pdfPath, err := r.toPDF(ctx, pptxPath, outputDir)
	if err != nil {
		r.logger.Error("preview rendering failed", "path", pptxPath, "error", err)
		return nil
	}

	pages, err := api.PageCountFile(pdfPath)
	if err != nil {
		r.logger.Error("converted PDF is unreadable", "path", pdfPath, "error", err)
		return nil
	}
	if pages == 0 {
		r.logger.Error("converted PDF has no pages", "path", pdfPath)
		return nil
	}

	if err := r.toPNGs(ctx, pdfPath, outputDir); err != nil {
		r.logger.Error("preview rendering failed", "path", pdfPath, "error", err)
		return nil
	}

	images := pngsIn(outputDir)
	r.logger.Info("rendered slide previews",
		"path", pptxPath,
		"pages", pages,
		"images", len(images),
		"dir", outputDir)
	return images
}

// toPDF converts the deck to a PDF in outputDir and returns its path.
func (r *Renderer) toPDF(ctx context.Context, pptxPath, outputDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.soffice,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outputDir,
		pptxPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("libreoffice failed: %w (output: %s)", err, string(out))
	}

	stem := strings.TrimSuffix(filepath.Base(pptxPath), filepath.Ext(pptxPath))
	pdfPath := filepath.Join(outputDir, stem+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("libreoffice did not produce a PDF: %w", err)
	}
	return pdfPath, nil
}

// toPNGs renders each PDF page to a PNG named slide-N.png. When pdftoppm is
// not installed, falls back to LibreOffice PNG export, which produces a
// single image for the first page only.
func (r *Renderer) toPNGs(ctx context.Context, pdfPath, outputDir string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := exec.LookPath(r.pdftoppm); err != nil {
		r.logger.Info("pdftoppm not found, falling back to LibreOffice PNG export")
		cmd := exec.CommandContext(ctx, r.soffice,
			"--headless",
			"--convert-to", "png",
			"--outdir", outputDir,
			pdfPath,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("libreoffice png export failed: %w (output: %s)", err, string(out))
		}
		return nil
	}

	cmd := exec.CommandContext(ctx, r.pdftoppm,
		"-png",
		"-r", "200",
		pdfPath,
		filepath.Join(outputDir, "slide"),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(out))
	}
	return nil
}

// pngsIn returns the sorted PNG paths in dir. pdftoppm zero-pads page
// numbers, so lexicographic order matches slide order.
func pngsIn(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".png") {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images
}
