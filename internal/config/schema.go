package config

import "github.com/jackzampolin/myprompts/internal/prompts"

// Config holds the global configuration.
// Stored at: {home}/config.yaml
//
// Besides provider settings, the file is the global scope layer: it accepts
// the same keys as a workspace or folder layer file.
type Config struct {
	Providers map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	LayerFile `mapstructure:",squash" yaml:",inline"`
}

// ProviderCfg configures a chat model provider.
type ProviderCfg struct {
	Type           string   `mapstructure:"type" yaml:"type"`                               // "openai", "openrouter", "ollama"
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url,omitempty"`             // Optional endpoint override
	APIKey         string   `mapstructure:"api_key" yaml:"api_key,omitempty"`               // API key (supports ${ENV_VAR} syntax)
	Models         []string `mapstructure:"models" yaml:"models"`                           // Served families; first is the default
	Enabled        bool     `mapstructure:"enabled" yaml:"enabled"`
	MaxRetries     int      `mapstructure:"max_retries" yaml:"max_retries,omitempty"`       // SDK transport retries
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"` // 0 = no timeout
}

// LayerFile is the on-disk form of one scope: a base layer plus optional
// per-language variants keyed by language id.
type LayerFile struct {
	prompts.Settings  `mapstructure:",squash" yaml:",inline"`
	LanguageOverrides map[string]prompts.Settings `mapstructure:"language_overrides" yaml:"language_overrides,omitempty"`
}

// appendLayers adds the file's language layer (if any) and base layer to ls.
func (f *LayerFile) appendLayers(ls prompts.LayerSet, base, lang prompts.Scope, languageID string) prompts.LayerSet {
	if f == nil {
		return ls
	}
	if override, ok := f.LanguageOverrides[languageID]; ok {
		ls = append(ls, prompts.Layer{Scope: lang, Settings: override})
	}
	return append(ls, prompts.Layer{Scope: base, Settings: f.Settings})
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"openai": {
				Type:       "openai",
				APIKey:     "${OPENAI_API_KEY}",
				Models:     []string{"gpt-4o", "gpt-4o-mini"},
				Enabled:    true,
				MaxRetries: 2,
			},
			"openrouter": {
				Type:       "openrouter",
				APIKey:     "${OPENROUTER_API_KEY}",
				Models:     []string{"anthropic/claude-sonnet-4"},
				Enabled:    true,
				MaxRetries: 2,
			},
			"ollama": {
				Type:    "ollama",
				BaseURL: "http://localhost:11434",
				Models:  []string{"llama3.1"},
				Enabled: false,
			},
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
