// Package endpoints defines the HTTP API surface of the deckgen server.
// Each endpoint doubles as a cobra command that calls the running server.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/internal/ir"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Presentation endpoints
		&GenerateEndpoint{},
		&GetPresentationEndpoint{},
		&RefineEndpoint{},
		&DownloadEndpoint{},
		&PreviewEndpoint{},

		// Style extraction
		&ScanEndpoint{},
	}
}

// GenerateRequest is the JSON body for POST /api/generate.
// Multipart form submissions carry the same fields plus a template file.
type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	NumSlides int    `json:"num_slides,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// GenerateResponse is returned by generate and refine calls.
type GenerateResponse struct {
	PresentationID string           `json:"presentation_id"`
	Presentation   *ir.Presentation `json:"presentation"`
	DownloadURL    string           `json:"download_url"`
	PreviewURLs    []string         `json:"preview_urls"`
	DesignTokens   *ir.DesignTokens `json:"design_tokens,omitempty"`
}

// RefineRequest is the JSON body for POST /api/presentations/{id}/refine.
type RefineRequest struct {
	Instruction string `json:"instruction"`
	Provider    string `json:"provider,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
