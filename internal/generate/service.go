// Package generate turns user prompts into validated presentation documents
// by dispatching to a text-generation provider and parsing its output.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/deckgen/internal/ir"
	"github.com/jackzampolin/deckgen/internal/providers"
)

// Service orchestrates generation and refinement against a provider
// registry. Transient provider failures are retried; input and
// misconfiguration errors are not.
type Service struct {
	registry        *providers.Registry
	defaultProvider string
	attempts        uint
	retryDelay      time.Duration
	logger          *slog.Logger
}

// NewService creates a generation service using defaultProvider when a
// request does not name one.
func NewService(registry *providers.Registry, defaultProvider string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry:        registry,
		defaultProvider: defaultProvider,
		attempts:        3,
		retryDelay:      500 * time.Millisecond,
		logger:          logger,
	}
}

// Input bounds enforced before any provider call.
const (
	minPromptLen      = 3
	maxPromptLen      = 5000
	minInstructionLen = 3
	maxInstructionLen = 2000
	maxNumSlides      = 30
)

// Request describes one generation call.
type Request struct {
	// Prompt is the user's description of the desired presentation.
	Prompt string

	// NumSlides, when positive, asks for exactly that many slides. Zero
	// lets the model decide.
	NumSlides int

	// Provider overrides the service default when non-empty.
	Provider string

	// Tokens constrain the design to a scanned template's style.
	Tokens *ir.DesignTokens
}

// Generate produces a new validated presentation from a prompt.
func (s *Service) Generate(ctx context.Context, req Request) (*ir.Presentation, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if len(prompt) < minPromptLen {
		return nil, &InputError{Err: fmt.Errorf("prompt must be at least %d characters", minPromptLen)}
	}
	if len(prompt) > maxPromptLen {
		return nil, &InputError{Err: fmt.Errorf("prompt must be at most %d characters", maxPromptLen)}
	}
	if req.NumSlides != 0 && (req.NumSlides < 1 || req.NumSlides > maxNumSlides) {
		return nil, &InputError{Err: fmt.Errorf("num_slides must be between 1 and %d", maxNumSlides)}
	}

	client, err := s.client(req.Provider)
	if err != nil {
		return nil, err
	}

	user := buildUserPrompt(req.Prompt, req.NumSlides, req.Tokens)
	raw, err := s.call(ctx, client, SystemPrompt, user)
	if err != nil {
		return nil, err
	}

	pres, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("generated presentation",
		"provider", client.Name(),
		"title", pres.Title,
		"slides", len(pres.Slides))
	return pres, nil
}

// Refine applies an edit instruction to an existing presentation and
// returns a brand-new validated document. The input is never mutated.
func (s *Service) Refine(ctx context.Context, current *ir.Presentation, instruction, provider string) (*ir.Presentation, error) {
	instr := strings.TrimSpace(instruction)
	if len(instr) < minInstructionLen {
		return nil, &InputError{Err: fmt.Errorf("instruction must be at least %d characters", minInstructionLen)}
	}
	if len(instr) > maxInstructionLen {
		return nil, &InputError{Err: fmt.Errorf("instruction must be at most %d characters", maxInstructionLen)}
	}
	if current == nil {
		return nil, &InputError{Err: fmt.Errorf("no presentation to refine")}
	}

	client, err := s.client(provider)
	if err != nil {
		return nil, err
	}

	user, err := buildRefinePrompt(current, instruction)
	if err != nil {
		return nil, err
	}
	raw, err := s.call(ctx, client, RefineSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	pres, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("refined presentation",
		"provider", client.Name(),
		"title", pres.Title,
		"slides", len(pres.Slides))
	return pres, nil
}

func (s *Service) client(name string) (providers.Client, error) {
	if name == "" {
		name = s.defaultProvider
	}
	client, err := s.registry.Get(name)
	if err != nil {
		// An unknown provider name arrives from user input; report it as
		// a bad request rather than an internal failure.
		return nil, &InputError{Err: err}
	}
	return client, nil
}

// call invokes the provider, retrying only transient failures.
func (s *Service) call(ctx context.Context, client providers.Client, system, user string) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			return client.Generate(ctx, system, user)
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.retryDelay),
		retry.RetryIf(providers.IsTransient),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("retrying provider call",
				"provider", client.Name(),
				"attempt", n+1,
				"error", err)
		}),
	)
}
