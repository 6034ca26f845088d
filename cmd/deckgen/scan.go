package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/api"
	"github.com/jackzampolin/deckgen/internal/pptx"
)

var scanCmd = &cobra.Command{
	Use:   "scan <deck.pptx>",
	Short: "Extract design tokens from a .pptx file",
	Long: `Scan reads an existing presentation and reports its design tokens:
colors, fonts, and layout names. The tokens can constrain later
generations so new decks match the scanned document's style.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := pptx.NewScanner(nil).Scan(args[0])
		if err != nil {
			return err
		}
		return api.Output(tokens)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
