package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackzampolin/deckgen/internal/home"
	"github.com/jackzampolin/deckgen/internal/ir"
	"github.com/jackzampolin/deckgen/internal/pptx"
	"github.com/jackzampolin/deckgen/internal/providers"
	"github.com/jackzampolin/deckgen/internal/server/endpoints"
)

const testDeckJSON = `{
	"title": "Ocean Life",
	"slides": [
		{"elements": [{"type": "text", "content": "Ocean Life", "is_title": true}], "speaker_notes": "intro"},
		{"elements": [{"type": "text", "content": "Coral reefs"}]}
	]
}`

// newTestServer wires a server around a mock provider and returns an
// in-process HTTP test server for its handler.
func newTestServer(t *testing.T) (*Server, *httptest.Server, *providers.MockClient) {
	t.Helper()

	dir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatal(err)
	}

	srv, err := New(Config{Home: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := providers.NewMockClient()
	mock.Response = testDeckJSON
	srv.Registry().Register("mock", mock)

	// Rendering shells out to LibreOffice; skip it in tests.
	srv.Services().Renderer = nil

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts, mock
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	health := decodeJSON[endpoints.HealthResponse](t, resp)
	if health.Status != "ok" {
		t.Errorf("health.Status = %q, want %q", health.Status, "ok")
	}
}

func TestStatusEndpoint(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("status check failed: %v", err)
	}
	status := decodeJSON[endpoints.StatusResponse](t, resp)
	if status.Server != "running" {
		t.Errorf("status.Server = %q", status.Server)
	}
	found := false
	for _, p := range status.Providers {
		if p == "mock" {
			found = true
		}
	}
	if !found {
		t.Errorf("providers = %v, want mock listed", status.Providers)
	}
}

func TestGenerateBuildsDeck(t *testing.T) {
	srv, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{
		Prompt:   "ocean life",
		Provider: "mock",
	})
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	gen := decodeJSON[endpoints.GenerateResponse](t, resp)

	if gen.PresentationID == "" {
		t.Fatal("empty presentation ID")
	}
	if gen.Presentation.Title != "Ocean Life" {
		t.Errorf("title = %q", gen.Presentation.Title)
	}
	if len(gen.Presentation.Slides) != 2 {
		t.Errorf("slides = %d, want 2", len(gen.Presentation.Slides))
	}
	if gen.DownloadURL != "/api/download/"+gen.PresentationID {
		t.Errorf("download URL = %q", gen.DownloadURL)
	}

	// The .pptx must exist on disk under the session's deck dir.
	pptxPath := srv.Services().Home.DeckPath(gen.PresentationID)
	if _, err := os.Stat(pptxPath); err != nil {
		t.Errorf("built file missing: %v", err)
	}
}

func TestGenerateEmptyPromptIsBadRequest(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{
		Prompt:   "   ",
		Provider: "mock",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestGenerateUnknownProviderIsBadRequest(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{
		Prompt:   "ocean life",
		Provider: "nope",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestDownloadReturnsPptx(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{Prompt: "ocean life", Provider: "mock"})
	gen := decodeJSON[endpoints.GenerateResponse](t, resp)

	dl, err := http.Get(ts.URL + gen.DownloadURL)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer dl.Body.Close()

	if dl.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", dl.StatusCode)
	}
	if ct := dl.Header.Get("Content-Type"); !strings.Contains(ct, "presentationml") {
		t.Errorf("content type = %q", ct)
	}
	data, err := io.ReadAll(dl.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("response is not a zip archive")
	}
}

func TestDownloadUnknownIDIs404(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/download/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestGetPresentation(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{Prompt: "ocean life", Provider: "mock"})
	gen := decodeJSON[endpoints.GenerateResponse](t, resp)

	got, err := http.Get(ts.URL + "/api/presentations/" + gen.PresentationID)
	if err != nil {
		t.Fatal(err)
	}
	pres := decodeJSON[endpoints.PresentationResponse](t, got)
	if pres.Presentation.Title != "Ocean Life" {
		t.Errorf("title = %q", pres.Presentation.Title)
	}
}

func TestPreviewOutOfRangeIs404(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{Prompt: "ocean life", Provider: "mock"})
	gen := decodeJSON[endpoints.GenerateResponse](t, resp)

	// Rendering is disabled in tests, so any index is out of range.
	got, err := http.Get(fmt.Sprintf("%s/api/preview/%s/0", ts.URL, gen.PresentationID))
	if err != nil {
		t.Fatal(err)
	}
	defer got.Body.Close()
	if got.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got.StatusCode, http.StatusNotFound)
	}
}

func TestRefineRebuildsDeck(t *testing.T) {
	_, ts, mock := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/generate", endpoints.GenerateRequest{Prompt: "ocean life", Provider: "mock"})
	gen := decodeJSON[endpoints.GenerateResponse](t, resp)

	mock.Response = `{
		"title": "Ocean Life v2",
		"slides": [{"elements": [{"type": "text", "content": "Updated", "is_title": true}]}]
	}`

	ref := postJSON(t, ts.URL+"/api/presentations/"+gen.PresentationID+"/refine", endpoints.RefineRequest{
		Instruction: "shorten it",
		Provider:    "mock",
	})
	if ref.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(ref.Body)
		t.Fatalf("status = %d, body = %s", ref.StatusCode, body)
	}
	updated := decodeJSON[endpoints.GenerateResponse](t, ref)

	if updated.PresentationID != gen.PresentationID {
		t.Errorf("refine changed the ID: %q -> %q", gen.PresentationID, updated.PresentationID)
	}
	if updated.Presentation.Title != "Ocean Life v2" {
		t.Errorf("title = %q", updated.Presentation.Title)
	}

	// The refinement prompt carries the previous document.
	_, user := mock.LastPrompts()
	if !strings.Contains(user, "Ocean Life") || !strings.Contains(user, "shorten it") {
		t.Errorf("refine prompt missing context: %q", user)
	}
}

func TestRefineUnknownIDIs404(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/presentations/nope/refine", endpoints.RefineRequest{Instruction: "x"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

// buildTemplateFile builds a small deck to use as an uploaded template.
func buildTemplateFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.pptx")
	pres := &ir.Presentation{
		Title: "Template",
		Theme: ir.DefaultTheme(),
		Slides: []ir.Slide{{
			Layout:          ir.LayoutTitleContent,
			BackgroundColor: "#FFFFFF",
			Elements: []ir.Element{&ir.TextBox{
				Type:      ir.ElementText,
				Content:   "Styled",
				X:         1,
				Y:         1,
				Width:     8,
				Height:    1,
				FontName:  "Georgia",
				FontSize:  24,
				FontColor: "#1a73e8",
			}},
		}},
	}
	if _, err := pptx.NewBuilder(nil).Build(pres, path, ""); err != nil {
		t.Fatalf("failed to build template: %v", err)
	}
	return path
}

func multipartUpload(t *testing.T, url, fileField, filePath string, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	fw, err := mw.CreateFormFile(fileField, filepath.Base(filePath))
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestScanExtractsTokens(t *testing.T) {
	_, ts, _ := newTestServer(t)
	template := buildTemplateFile(t)

	resp := multipartUpload(t, ts.URL+"/api/scan", "file", template, nil)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	tokens := decodeJSON[ir.DesignTokens](t, resp)

	if len(tokens.ExtractedColors) == 0 {
		t.Error("no colors extracted")
	}
	if len(tokens.LayoutNames) == 0 {
		t.Error("no layout names extracted")
	}
}

func TestGenerateWithTemplateUpload(t *testing.T) {
	_, ts, mock := newTestServer(t)
	template := buildTemplateFile(t)

	resp := multipartUpload(t, ts.URL+"/api/generate", "template", template, map[string]string{
		"prompt":   "ocean life",
		"provider": "mock",
	})
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	gen := decodeJSON[endpoints.GenerateResponse](t, resp)

	if gen.DesignTokens == nil {
		t.Fatal("design tokens missing from response")
	}

	// The extracted style must flow into the generation prompt.
	_, user := mock.LastPrompts()
	if !strings.Contains(user, "Design Constraints") {
		t.Errorf("prompt missing design constraints: %q", user)
	}
}

func TestServerLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping lifecycle test in short mode")
	}

	dir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	srv, err := New(Config{Host: "127.0.0.1", Port: 18080, Home: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	serverErr := make(chan error, 1)
	serverCtx, serverCancel := context.WithCancel(ctx)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	baseURL := "http://127.0.0.1:18080"
	if err := waitForServer(ctx, baseURL, 10*time.Second); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	if !srv.IsRunning() {
		t.Error("IsRunning() = false, want true")
	}

	// Starting again while running must fail.
	if err := srv.Start(ctx); err == nil {
		t.Error("second Start() should return error")
	}

	serverCancel()
	select {
	case err := <-serverErr:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("server did not shut down within timeout")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown, want false")
	}
}

// waitForServer polls the server until it responds or timeout.
func waitForServer(ctx context.Context, baseURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"/health", nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server not ready after %s", timeout)
}
