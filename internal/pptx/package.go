package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pkg is an in-memory OPC package: the zip container holding every part of
// a .pptx document. Part order is preserved so a re-render of the same
// input produces the same archive layout.
type pkg struct {
	names []string
	parts map[string][]byte
}

func newPkg() *pkg {
	return &pkg{parts: make(map[string][]byte)}
}

// openPkg reads every part of an existing .pptx into memory.
func openPkg(path string) (*pkg, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	p := newPkg()
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		p.set(f.Name, data)
	}

	if _, ok := p.get("ppt/presentation.xml"); !ok {
		return nil, fmt.Errorf("not a presentation package: missing ppt/presentation.xml")
	}
	return p, nil
}

func (p *pkg) get(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

func (p *pkg) set(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

func (p *pkg) delete(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
}

func (p *pkg) has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// partsWithPrefix returns part names under a prefix, sorted by the numeric
// suffix of their base name (slide2 before slide10).
func (p *pkg) partsWithPrefix(prefix, suffix string) []string {
	var names []string
	for _, n := range p.names {
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, suffix) && !strings.Contains(n, "_rels") {
			names = append(names, n)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return partNumber(names[i], prefix, suffix) < partNumber(names[j], prefix, suffix)
	})
	return names
}

// partNumber extracts the numeric suffix from a part name like
// "ppt/slides/slide12.xml".
func partNumber(name, prefix, suffix string) int {
	s := strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
	var n int
	fmt.Sscanf(s, "%d", &n)
	return n
}

// save writes the package to path atomically: the archive is written to a
// temp file in the destination directory and renamed into place, so a
// failed save never leaves a corrupt partial file at the final path.
func (p *pkg) save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pptx-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	zw := zip.NewWriter(tmp)
	for _, name := range p.names {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("failed to add part %s: %w", name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			zw.Close()
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}
