package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/ir"
	"github.com/jackzampolin/deckgen/internal/pptx"
)

var (
	buildOut      string
	buildTemplate string
)

var buildCmd = &cobra.Command{
	Use:   "build <document.json>",
	Short: "Build a .pptx from a presentation document",
	Long: `Build compiles a presentation JSON document into a .pptx file without
calling any provider. The document is validated against the presentation
schema before building.

Examples:
  deckgen build deck.json
  deckgen build deck.json --out q3-review.pptx
  deckgen build deck.json --template corporate.pptx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		pres, err := ir.Decode(data)
		if err != nil {
			return fmt.Errorf("invalid presentation document: %w", err)
		}

		out := buildOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".json") + ".pptx"
		}

		if _, err := pptx.NewBuilder(nil).Build(pres, out, buildTemplate); err != nil {
			return err
		}
		fmt.Printf("Built %s (%d slides)\n", out, len(pres.Slides))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "", "Output path (default: input name with .pptx)")
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "Base .pptx whose master, layouts, and theme are inherited")

	rootCmd.AddCommand(buildCmd)
}
