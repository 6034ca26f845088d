package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackzampolin/deckgen/internal/ir"
)

// InputError marks a user-facing bad-request failure: an empty prompt,
// unparseable model output, or a document that fails schema validation.
// These are never retried.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError reports whether err belongs to the bad-request class.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// parseResponse turns raw model text into a validated presentation. Markdown
// code fences around the JSON are tolerated and stripped.
func parseResponse(raw string) (*ir.Presentation, error) {
	text := stripCodeFences(raw)
	if text == "" {
		return nil, &InputError{Err: fmt.Errorf("model returned empty output")}
	}

	pres, err := ir.Decode([]byte(text))
	if err != nil {
		return nil, &InputError{Err: fmt.Errorf("model returned invalid presentation: %w", err)}
	}
	return pres, nil
}

// stripCodeFences removes a surrounding triple-backtick fence, language tag
// included, leaving the body untouched.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}

	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
