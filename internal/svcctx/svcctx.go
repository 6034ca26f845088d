// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/deckgen/internal/config"
	"github.com/jackzampolin/deckgen/internal/generate"
	"github.com/jackzampolin/deckgen/internal/home"
	"github.com/jackzampolin/deckgen/internal/pptx"
	"github.com/jackzampolin/deckgen/internal/preview"
	"github.com/jackzampolin/deckgen/internal/providers"
	"github.com/jackzampolin/deckgen/internal/session"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Config    *config.Manager
	Registry  *providers.Registry
	Generator *generate.Service
	Builder   *pptx.Builder
	Scanner   *pptx.Scanner
	Renderer  *preview.Renderer
	Sessions  *session.Store
	Logger    *slog.Logger
	Home      *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// RegistryFrom extracts the provider registry from context.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// GeneratorFrom extracts the generation service from context.
func GeneratorFrom(ctx context.Context) *generate.Service {
	if s := ServicesFrom(ctx); s != nil {
		return s.Generator
	}
	return nil
}

// BuilderFrom extracts the document builder from context.
func BuilderFrom(ctx context.Context) *pptx.Builder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Builder
	}
	return nil
}

// ScannerFrom extracts the style scanner from context.
func ScannerFrom(ctx context.Context) *pptx.Scanner {
	if s := ServicesFrom(ctx); s != nil {
		return s.Scanner
	}
	return nil
}

// RendererFrom extracts the preview renderer from context.
func RendererFrom(ctx context.Context) *preview.Renderer {
	if s := ServicesFrom(ctx); s != nil {
		return s.Renderer
	}
	return nil
}

// SessionsFrom extracts the session store from context.
func SessionsFrom(ctx context.Context) *session.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
