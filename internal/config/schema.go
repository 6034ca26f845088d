package config

// Config holds deckgen configuration.
// Stored at: ~/.deckgen/config.yaml
type Config struct {
	Providers map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Defaults  DefaultsCfg            `mapstructure:"defaults" yaml:"defaults"`
	Output    OutputCfg              `mapstructure:"output" yaml:"output"`
	Server    ServerCfg              `mapstructure:"server" yaml:"server"`
}

// ProviderCfg configures a text-generation provider.
type ProviderCfg struct {
	Type    string `mapstructure:"type" yaml:"type"`         // "openai", "gemini", "anthropic", "mock"
	Model   string `mapstructure:"model" yaml:"model"`       // Model name; empty uses the provider default
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`   // API key (supports ${ENV_VAR} syntax)
	BaseURL string `mapstructure:"base_url" yaml:"base_url"` // Override endpoint; empty uses the provider default
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default generation settings.
type DefaultsCfg struct {
	Provider  string `mapstructure:"provider" yaml:"provider"`     // Provider used when a request names none
	NumSlides int    `mapstructure:"num_slides" yaml:"num_slides"` // Slide count when a request names none; 0 lets the model decide
}

// OutputCfg controls where built decks land and whether previews render.
type OutputCfg struct {
	Dir            string `mapstructure:"dir" yaml:"dir"`                         // Override for the decks directory; empty uses ~/.deckgen/decks
	RenderPreviews bool   `mapstructure:"render_previews" yaml:"render_previews"` // Render slide PNGs after building
}

// ServerCfg configures the HTTP API server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"gemini": {
				Type:    "gemini",
				Model:   "gemini-2.0-flash",
				APIKey:  "${GEMINI_API_KEY}",
				Enabled: true,
			},
			"openai": {
				Type:    "openai",
				Model:   "gpt-4o-mini",
				APIKey:  "${OPENAI_API_KEY}",
				Enabled: true,
			},
			"anthropic": {
				Type:    "anthropic",
				Model:   "claude-3-5-haiku-latest",
				APIKey:  "${ANTHROPIC_API_KEY}",
				Enabled: true,
			},
		},
		Defaults: DefaultsCfg{
			Provider: "gemini",
		},
		Output: OutputCfg{
			RenderPreviews: true,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// GetProvider returns a provider config by name.
func (c *Config) GetProvider(name string) (ProviderCfg, bool) {
	cfg, ok := c.Providers[name]
	return cfg, ok
}

// EnabledProviders returns all enabled providers.
func (c *Config) EnabledProviders() map[string]ProviderCfg {
	result := make(map[string]ProviderCfg)
	for name, cfg := range c.Providers {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
