package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/internal/generate"
	"github.com/jackzampolin/deckgen/internal/svcctx"
)

// RefineEndpoint handles POST /api/presentations/{id}/refine. It applies an
// edit instruction to the session's current document, rebuilds the .pptx in
// place, and re-renders previews.
type RefineEndpoint struct{}

var _ api.Endpoint = (*RefineEndpoint)(nil)

func (e *RefineEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations/{id}/refine", e.handler
}

func (e *RefineEndpoint) RequiresInit() bool { return true }

func (e *RefineEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	services := svcctx.ServicesFrom(r.Context())
	id := r.PathValue("id")

	sess, ok := sessionOr404(w, r, id)
	if !ok {
		return
	}

	var req RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	pres, err := services.Generator.Refine(r.Context(), sess.Presentation, req.Instruction, req.Provider)
	if err != nil {
		if generate.IsInputError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("refinement failed: %v", err))
		}
		return
	}

	// A refined deck keeps its session's design tokens but never re-applies
	// the uploaded template file; the refined document is authoritative.
	resp, err := buildArtifacts(r.Context(), services, id, pres, "", sess.Tokens)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *RefineEndpoint) Command(getServerURL func() string) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "refine <id> <instruction>",
		Short: "Apply an edit instruction to a generated presentation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := RefineRequest{Instruction: args[1], Provider: provider}
			var resp GenerateResponse
			if err := client.Post(cmd.Context(), "/api/presentations/"+args[0]+"/refine", req, &resp); err != nil {
				return err
			}
			fmt.Printf("ID:       %s\n", resp.PresentationID)
			fmt.Printf("Title:    %s\n", resp.Presentation.Title)
			fmt.Printf("Slides:   %d\n", len(resp.Presentation.Slides))
			fmt.Printf("Download: %s\n", resp.DownloadURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "Provider to use (default from config)")
	return cmd
}
