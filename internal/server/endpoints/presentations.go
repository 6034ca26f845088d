package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/internal/ir"
	"github.com/jackzampolin/deckgen/internal/session"
	"github.com/jackzampolin/deckgen/internal/svcctx"
)

// pptxContentType is the MIME type for .pptx downloads.
const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// sessionOr404 looks up a session and writes a 404/500 response on failure.
func sessionOr404(w http.ResponseWriter, r *http.Request, id string) (*session.Session, bool) {
	sess, err := svcctx.SessionsFrom(r.Context()).Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "presentation not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return sess, true
}

// GetPresentationEndpoint handles GET /api/presentations/{id}.
type GetPresentationEndpoint struct{}

var _ api.Endpoint = (*GetPresentationEndpoint)(nil)

func (e *GetPresentationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/presentations/{id}", e.handler
}

func (e *GetPresentationEndpoint) RequiresInit() bool { return true }

// PresentationResponse is the stored state of one presentation.
type PresentationResponse struct {
	PresentationID string           `json:"presentation_id"`
	Presentation   *ir.Presentation `json:"presentation"`
	DownloadURL    string           `json:"download_url"`
	PreviewURLs    []string         `json:"preview_urls"`
	DesignTokens   *ir.DesignTokens `json:"design_tokens,omitempty"`
}

func (e *GetPresentationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := sessionOr404(w, r, id)
	if !ok {
		return
	}

	previewURLs := make([]string, len(sess.PreviewPaths))
	for i := range sess.PreviewPaths {
		previewURLs[i] = fmt.Sprintf("/api/preview/%s/%d", id, i)
	}

	writeJSON(w, http.StatusOK, PresentationResponse{
		PresentationID: id,
		Presentation:   sess.Presentation,
		DownloadURL:    "/api/download/" + id,
		PreviewURLs:    previewURLs,
		DesignTokens:   sess.Tokens,
	})
}

func (e *GetPresentationEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a presentation document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PresentationResponse
			if err := client.Get(cmd.Context(), "/api/presentations/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DownloadEndpoint handles GET /api/download/{id}.
type DownloadEndpoint struct{}

var _ api.Endpoint = (*DownloadEndpoint)(nil)

func (e *DownloadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/download/{id}", e.handler
}

func (e *DownloadEndpoint) RequiresInit() bool { return true }

func (e *DownloadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := sessionOr404(w, r, id)
	if !ok {
		return
	}

	if sess.PptxPath == "" {
		writeError(w, http.StatusNotFound, "presentation has not been built")
		return
	}
	if _, err := os.Stat(sess.PptxPath); err != nil {
		writeError(w, http.StatusNotFound, "file not found on disk")
		return
	}

	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "presentation-"+short+".pptx"))
	http.ServeFile(w, r, sess.PptxPath)
}

func (e *DownloadEndpoint) Command(getServerURL func() string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a generated .pptx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			dest := output
			if dest == "" {
				dest = args[0] + ".pptx"
			}
			if err := client.Download(cmd.Context(), "/api/download/"+args[0], dest); err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default <id>.pptx)")
	return cmd
}

// PreviewEndpoint handles GET /api/preview/{id}/{index}.
type PreviewEndpoint struct{}

var _ api.Endpoint = (*PreviewEndpoint)(nil)

func (e *PreviewEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/preview/{id}/{index}", e.handler
}

func (e *PreviewEndpoint) RequiresInit() bool { return true }

func (e *PreviewEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := sessionOr404(w, r, id)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= len(sess.PreviewPaths) {
		writeError(w, http.StatusNotFound, "slide preview not found")
		return
	}

	imgPath := sess.PreviewPaths[index]
	if _, err := os.Stat(imgPath); err != nil {
		writeError(w, http.StatusNotFound, "preview image not found on disk")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, imgPath)
}

func (e *PreviewEndpoint) Command(getServerURL func() string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview <id> <slide-index>",
		Short: "Download a slide preview image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			dest := output
			if dest == "" {
				dest = fmt.Sprintf("%s-slide-%s.png", args[0], args[1])
			}
			if err := client.Download(cmd.Context(), fmt.Sprintf("/api/preview/%s/%s", args[0], args[1]), dest); err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default <id>-slide-<n>.png)")
	return cmd
}
