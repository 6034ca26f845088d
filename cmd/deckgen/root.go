package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Prompt-to-presentation generator producing PowerPoint files",
	Long: `Deckgen turns a natural-language description into a finished .pptx
presentation using LLM-backed generation and a structured document model.

The pipeline includes:
  - Multi-provider text generation (Gemini, OpenAI, Anthropic)
  - A validated intermediate document that preserves slide order
  - Template-aware builds that inherit master, layouts, and theme
  - Style extraction from existing decks to constrain generation`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.deckgen/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "deckgen home directory (default: ~/.deckgen)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
