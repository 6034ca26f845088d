package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/internal/generate"
	"github.com/jackzampolin/deckgen/internal/ir"
	"github.com/jackzampolin/deckgen/internal/session"
	"github.com/jackzampolin/deckgen/internal/svcctx"
)

// GenerateEndpoint handles POST /api/generate. The request is either a JSON
// body or a multipart form carrying an optional .pptx template. An uploaded
// template is scanned for design tokens; unless mode=reference it also
// becomes the base document for the build.
type GenerateEndpoint struct{}

var _ api.Endpoint = (*GenerateEndpoint)(nil)

func (e *GenerateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/generate", e.handler
}

func (e *GenerateEndpoint) RequiresInit() bool { return true }

func (e *GenerateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	services := svcctx.ServicesFrom(r.Context())

	req, templatePath, tokens, ok := e.parseRequest(w, r)
	if !ok {
		return
	}

	if req.NumSlides == 0 && services.Config != nil {
		req.NumSlides = services.Config.Get().Defaults.NumSlides
	}

	pres, err := services.Generator.Generate(r.Context(), generate.Request{
		Prompt:    req.Prompt,
		NumSlides: req.NumSlides,
		Provider:  req.Provider,
		Tokens:    tokens,
	})
	if err != nil {
		if generate.IsInputError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("generation failed: %v", err))
		}
		return
	}

	sess := services.Sessions.Create(pres)
	resp, err := buildArtifacts(r.Context(), services, sess.ID, pres, templatePath, tokens)
	if err != nil {
		services.Sessions.Delete(sess.ID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseRequest decodes either form or JSON input. When a template file is
// uploaded it is saved under the uploads directory and scanned; the returned
// template path is empty for mode=reference (tokens only).
func (e *GenerateEndpoint) parseRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, string, *ir.DesignTokens, bool) {
	var req GenerateRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return req, "", nil, false
		}
		return req, "", nil, true
	}

	const maxMemory = 50 << 20 // 50MB
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return req, "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	req.Prompt = r.FormValue("prompt")
	req.Provider = r.FormValue("provider")
	if v := r.FormValue("num_slides"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "num_slides must be an integer")
			return req, "", nil, false
		}
		req.NumSlides = n
	}

	files := r.MultipartForm.File["template"]
	if len(files) == 0 {
		return req, "", nil, true
	}

	fh := files[0]
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pptx") {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a .pptx", fh.Filename))
		return req, "", nil, false
	}

	homeDir := svcctx.HomeFrom(r.Context())
	uploadPath := filepath.Join(homeDir.UploadsDir(), "upload-"+uuid.NewString()+".pptx")
	if err := saveUpload(fh, uploadPath); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save upload: %v", err))
		return req, "", nil, false
	}

	tokens, err := svcctx.ScannerFrom(r.Context()).Scan(uploadPath)
	if err != nil {
		os.Remove(uploadPath)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("could not read template: %v", err))
		return req, "", nil, false
	}

	// Reference mode borrows the style but builds on a blank document.
	templatePath := uploadPath
	if r.FormValue("mode") == "reference" {
		templatePath = ""
	}
	return req, templatePath, tokens, true
}

// buildArtifacts builds the .pptx for a session, renders previews when the
// renderer is configured, and records everything on the session.
func buildArtifacts(ctx context.Context, services *svcctx.Services, sessID string, pres *ir.Presentation, templatePath string, tokens *ir.DesignTokens) (*GenerateResponse, error) {
	if err := services.Home.EnsureDeckDir(sessID); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pptxPath := services.Home.DeckPath(sessID)
	if _, err := services.Builder.Build(pres, pptxPath, templatePath); err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	var previews []string
	renderPreviews := services.Config == nil || services.Config.Get().Output.RenderPreviews
	if services.Renderer != nil && renderPreviews {
		previews = services.Renderer.Render(ctx, pptxPath, services.Home.PreviewsDir(sessID))
	}

	err := services.Sessions.Update(sessID, func(s *session.Session) {
		s.Presentation = pres
		s.PptxPath = pptxPath
		s.PreviewPaths = previews
		s.Tokens = tokens
	})
	if err != nil {
		return nil, err
	}

	previewURLs := make([]string, len(previews))
	for i := range previews {
		previewURLs[i] = fmt.Sprintf("/api/preview/%s/%d", sessID, i)
	}

	return &GenerateResponse{
		PresentationID: sessID,
		Presentation:   pres,
		DownloadURL:    "/api/download/" + sessID,
		PreviewURLs:    previewURLs,
		DesignTokens:   tokens,
	}, nil
}

// saveUpload streams an uploaded file to destPath.
func saveUpload(fh *multipart.FileHeader, destPath string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func (e *GenerateEndpoint) Command(getServerURL func() string) *cobra.Command {
	var numSlides int
	var provider string

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate a presentation from a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := GenerateRequest{
				Prompt:    args[0],
				NumSlides: numSlides,
				Provider:  provider,
			}
			var resp GenerateResponse
			if err := client.Post(cmd.Context(), "/api/generate", req, &resp); err != nil {
				return err
			}
			fmt.Printf("ID:       %s\n", resp.PresentationID)
			fmt.Printf("Title:    %s\n", resp.Presentation.Title)
			fmt.Printf("Slides:   %d\n", len(resp.Presentation.Slides))
			fmt.Printf("Download: %s\n", resp.DownloadURL)
			return nil
		},
	}
	cmd.Flags().IntVar(&numSlides, "slides", 0, "Number of slides (0 lets the model decide)")
	cmd.Flags().StringVar(&provider, "provider", "", "Provider to use (default from config)")
	return cmd
}
