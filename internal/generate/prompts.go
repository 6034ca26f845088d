package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackzampolin/deckgen/internal/ir"
)

// SystemPrompt instructs the model to emit a presentation document in the
// IR's external JSON shape.
const SystemPrompt = `You are deckgen, an expert presentation designer.

Your job is to convert a user's description into a structured JSON object
that represents a professional slide deck.

## Output Rules
1. Return **only** valid JSON - no markdown fences, no commentary.
2. The JSON must conform exactly to this schema:

{
  "title": "string",
  "subtitle": "string (optional)",
  "author": "deckgen",
  "theme": {
    "primary_color": "#hex",
    "secondary_color": "#hex",
    "background_color": "#hex",
    "font_heading": "string",
    "font_body": "string"
  },
  "slides": [
    {
      "layout": "title | title_content | two_column | blank | section_header | image_full",
      "background_color": "#hex",
      "elements": [
        {
          "type": "text",
          "content": "string",
          "is_title": true/false,
          "x": float, "y": float, "width": float, "height": float,
          "font_name": "string",
          "font_size": int,
          "font_bold": bool,
          "font_italic": bool,
          "font_color": "#hex",
          "alignment": "left | center | right",
          "vertical_alignment": "top | middle | bottom"
        }
      ],
      "speaker_notes": "string (optional)"
    }
  ]
}

3. Elements may also be {"type": "image", ...} or {"type": "chart", ...}; prefer "text" unless the user asks for visuals.
4. Make the presentation visually appealing with proper spacing, font sizes, and colors.
5. Use the first slide as a title slide with large title text and optional subtitle.
6. Use section headers between major topics.
7. Keep bullet points concise (max ~8 words per bullet).
8. For slide positioning, the canvas is 13.333 x 7.5 inches.
9. Vary background colors per slide for visual interest (keep text readable).
10. Always include speaker notes with key talking points.`

// RefineSystemPrompt instructs the model to apply an edit and return the
// complete updated document.
const RefineSystemPrompt = `You are deckgen, an expert presentation editor.

You will receive the current presentation JSON and a user instruction describing
what to change. Apply the requested changes and return the COMPLETE updated
presentation JSON.

## Rules
1. Return **only** valid JSON - no markdown fences, no commentary.
2. Preserve the same schema structure as the input.
3. Only modify what the user requested - keep everything else unchanged.
4. If the user asks to add slides, insert them in logical order.
5. If the user asks to change colors/fonts, apply changes consistently.
6. Always maintain valid positioning (canvas is 13.333 x 7.5 inches).`

// buildUserPrompt assembles the generation message: the user's description,
// an optional slide count, and optional design constraints from a scanned
// template.
func buildUserPrompt(prompt string, numSlides int, tokens *ir.DesignTokens) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a presentation about:\n\n%s", prompt)

	if numSlides > 0 {
		fmt.Fprintf(&b, "\nGenerate exactly %d slides.", numSlides)
	}

	if tokens != nil {
		b.WriteString("\n\n## Design Constraints (from uploaded template/reference)\n")
		b.WriteString("You MUST use these design tokens:\n")
		fmt.Fprintf(&b, "- Primary color: %s\n", tokens.PrimaryColor)
		fmt.Fprintf(&b, "- Secondary color: %s\n", tokens.SecondaryColor)
		fmt.Fprintf(&b, "- Background color: %s\n", tokens.BackgroundColor)
		fmt.Fprintf(&b, "- Heading font: %s\n", tokens.FontHeading)
		fmt.Fprintf(&b, "- Body font: %s\n", tokens.FontBody)
		if len(tokens.ExtractedColors) > 0 {
			palette := tokens.ExtractedColors
			if len(palette) > 10 {
				palette = palette[:10]
			}
			fmt.Fprintf(&b, "- Available palette: %s\n", strings.Join(palette, ", "))
		}
	}

	return b.String()
}

// buildRefinePrompt assembles the refinement message: the current document
// plus the edit instruction.
func buildRefinePrompt(current *ir.Presentation, instruction string) (string, error) {
	irJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize current presentation: %w", err)
	}
	return fmt.Sprintf(
		"## Current Presentation JSON\n\n```json\n%s\n```\n\n## User Instruction\n\n%s\n\nApply the changes and return the complete updated JSON.",
		irJSON, instruction,
	), nil
}
