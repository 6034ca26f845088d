package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the deckgen home directory.
	DefaultDirName = ".deckgen"

	// DecksDirName is the subdirectory for built presentations.
	DecksDirName = "decks"

	// UploadsDirName is the subdirectory for uploaded template files.
	UploadsDirName = "uploads"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the deckgen home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.deckgen).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DecksDir returns the directory holding all built presentations.
func (d *Dir) DecksDir() string {
	return filepath.Join(d.path, DecksDirName)
}

// DeckDir returns the output directory for one presentation.
func (d *Dir) DeckDir(id string) string {
	return filepath.Join(d.DecksDir(), id)
}

// DeckPath returns the .pptx path for one presentation.
func (d *Dir) DeckPath(id string) string {
	return filepath.Join(d.DeckDir(id), id+".pptx")
}

// PreviewsDir returns the slide-image directory for one presentation.
func (d *Dir) PreviewsDir(id string) string {
	return filepath.Join(d.DeckDir(id), "previews")
}

// UploadsDir returns the directory for uploaded template files.
func (d *Dir) UploadsDir() string {
	return filepath.Join(d.path, UploadsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.DecksDir(), d.UploadsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureDeckDir creates the output directory for one presentation.
func (d *Dir) EnsureDeckDir(id string) error {
	return os.MkdirAll(d.DeckDir(id), 0o755)
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
