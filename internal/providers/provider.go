// Package providers implements the text-generation clients the deck
// generator can dispatch to. Every provider exposes the same single
// operation: map a system prompt and a user message to raw model text.
package providers

import (
	"context"
	"errors"
	"fmt"
)

// Client is the text-generation interface the core consumes.
type Client interface {
	// Generate sends one prompt pair and returns the raw model output,
	// which callers parse and validate themselves.
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)

	// Name returns the client identifier (e.g. "openai").
	Name() string
}

// Error categories. Misconfiguration (missing key, unknown provider, bad
// credentials) is permanent; TransientError marks failures worth retrying.
var (
	ErrMissingAPIKey   = errors.New("provider API key not configured")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrAuthFailed      = errors.New("provider authentication failed")
)

// TransientError wraps a provider failure that may succeed on retry:
// rate limits, overload responses, and network errors.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient provider error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// classifyStatus maps an HTTP status from a provider API to an error
// category.
func classifyStatus(provider string, status int, body []byte) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%s: %w (status %d): %s", provider, ErrAuthFailed, status, truncate(body))
	case status == 429 || status >= 500:
		return &TransientError{Err: fmt.Errorf("%s error (status %d): %s", provider, status, truncate(body))}
	default:
		return fmt.Errorf("%s error (status %d): %s", provider, status, truncate(body))
	}
}

func truncate(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "...[truncated]"
	}
	return string(body)
}
