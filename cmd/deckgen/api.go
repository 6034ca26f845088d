package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running deckgen server via HTTP.

These commands require a running server (deckgen serve).
Use --server to specify a custom server URL.

Examples:
  deckgen api health                       # Check server health
  deckgen api generate "ocean life"        # Generate a presentation
  deckgen api download <id> -o deck.pptx   # Download the built file
  deckgen api refine <id> "shorter titles" # Apply an edit instruction`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.GenerateEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.GetPresentationEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.RefineEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.DownloadEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.PreviewEndpoint{}).Command(getServerURL))

	rootCmd.AddCommand(apiCmd)
}
