package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/internal/svcctx"
)

// ScanEndpoint handles POST /api/scan with a multipart .pptx upload. It
// returns the design tokens extracted from the document without generating
// anything.
type ScanEndpoint struct{}

var _ api.Endpoint = (*ScanEndpoint)(nil)

func (e *ScanEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/scan", e.handler
}

func (e *ScanEndpoint) RequiresInit() bool { return true }

func (e *ScanEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 50 << 20 // 50MB
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	fh := files[0]
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pptx") {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a .pptx", fh.Filename))
		return
	}

	homeDir := svcctx.HomeFrom(r.Context())
	uploadPath := filepath.Join(homeDir.UploadsDir(), "scan-"+uuid.NewString()+".pptx")
	if err := saveUpload(fh, uploadPath); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save upload: %v", err))
		return
	}
	defer os.Remove(uploadPath)

	tokens, err := svcctx.ScannerFrom(r.Context()).Scan(uploadPath)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("could not read document: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

func (e *ScanEndpoint) Command(_ func() string) *cobra.Command {
	// No CLI command for file upload; use the local "deckgen scan" command.
	return nil
}
