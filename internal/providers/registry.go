package providers

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ProviderConfig describes one provider entry from configuration, with its
// API key already resolved.
type ProviderConfig struct {
	Type    string // "openai", "gemini", "anthropic", "mock"
	Model   string
	APIKey  string
	BaseURL string
	Enabled bool
}

// RegistryConfig is the full provider section of the configuration.
type RegistryConfig struct {
	Providers map[string]ProviderConfig
}

// Registry holds the instantiated clients. It supports config-driven
// creation and hot-reload, and is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
	logger  *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
		logger:  slog.Default(),
	}
}

// NewRegistryFromConfig creates a registry holding a client for every
// enabled provider with a usable configuration. Providers that fail to
// construct are logged and skipped, never fatal.
func NewRegistryFromConfig(cfg RegistryConfig, logger *slog.Logger) *Registry {
	r := NewRegistry()
	if logger != nil {
		r.logger = logger
	}
	r.Reload(cfg)
	return r
}

// SetLogger sets the registry's logger.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds or replaces a client by name.
func (r *Registry) Register(name string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	r.logger.Info("registered provider", "name", name)
}

// Unregister removes a client by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, name)
	r.logger.Info("unregistered provider", "name", name)
}

// Get returns a client by name.
func (r *Registry) Get(name string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return client, nil
}

// Has reports whether a client is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reload reconciles the registry against new configuration: providers no
// longer configured are removed, changed ones recreated, new ones added.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool, len(cfg.Providers))
	for name, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}
		client, err := newClient(name, pc)
		if err != nil {
			r.logger.Warn("skipping provider", "name", name, "type", pc.Type, "error", err)
			continue
		}
		want[name] = true
		if _, exists := r.clients[name]; exists {
			r.logger.Info("updated provider", "name", name, "type", pc.Type)
		} else {
			r.logger.Info("registered provider", "name", name, "type", pc.Type)
		}
		r.clients[name] = client
	}

	for name := range r.clients {
		if !want[name] {
			delete(r.clients, name)
			r.logger.Info("unregistered provider", "name", name)
		}
	}
}

// newClient constructs a client for a provider config entry.
func newClient(name string, cfg ProviderConfig) (Client, error) {
	switch cfg.Type {
	case "openai":
		return NewOpenAIClient(name, cfg)
	case "gemini":
		return NewGeminiClient(name, cfg)
	case "anthropic":
		return NewAnthropicClient(name, cfg)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrUnknownProvider, cfg.Type)
	}
}
