package providers

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jackzampolin/myprompts/internal/prompts"
)

// Registry holds chat clients keyed by vendor name.
// It supports config-driven instantiation, hot-reload, and provides thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]ChatClient
	configs map[string]ProviderConfig
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]ChatClient),
		configs: make(map[string]ProviderConfig),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers a chat client under its Name.
func (r *Registry) Register(client ChatClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.Name()] = client
	if r.logger != nil {
		r.logger.Debug("registered chat client", "name", client.Name())
	}
}

// Unregister removes a chat client by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, name)
	delete(r.configs, name)
	if r.logger != nil {
		r.logger.Debug("unregistered chat client", "name", name)
	}
}

// Get returns a chat client by name.
func (r *Registry) Get(name string) (ChatClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("chat client not found: %s", name)
	}
	return client, nil
}

// List returns all registered vendor names, sorted.
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

// Select finds the model matching sel.
//
// The vendor must name a registered client. An empty family selects the
// client's first model; otherwise the family must be one the client serves,
// unless the client accepts any family.
func (r *Registry) Select(sel prompts.ModelSelector) (*Model, bool) {
	r.mu.RLock()
	client, ok := r.clients[sel.Vendor]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	served := client.Models()
	switch {
	case sel.Family == "" && len(served) > 0:
		return NewModel(client, served[0]), true
	case sel.Family == "":
		return nil, false
	case len(served) == 0 || slices.Contains(served, sel.Family):
		return NewModel(client, sel.Family), true
	default:
		return nil, false
	}
}

// Available returns every vendor/family pair the registry can serve.
func (r *Registry) Available() []prompts.ModelSelector {
	var out []prompts.ModelSelector
	for _, name := range r.List() {
		client, err := r.Get(name)
		if err != nil {
			continue
		}
		for _, family := range client.Models() {
			out = append(out, prompts.ModelSelector{Vendor: name, Family: family})
		}
	}
	return out
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	Providers map[string]ProviderConfig
}

// ProviderConfig matches config.ProviderCfg with resolved API key.
type ProviderConfig struct {
	Type       string // "openai", "openrouter", "ollama"
	BaseURL    string
	APIKey     string // Resolved API key
	Models     []string
	Enabled    bool
	MaxRetries int
	Timeout    time.Duration
}

func (c ProviderConfig) equal(o ProviderConfig) bool {
	return c.Type == o.Type &&
		c.BaseURL == o.BaseURL &&
		c.APIKey == o.APIKey &&
		c.Enabled == o.Enabled &&
		c.MaxRetries == o.MaxRetries &&
		c.Timeout == o.Timeout &&
		slices.Equal(c.Models, o.Models)
}

// usable reports whether a provider should be registered.
// Hosted providers need an API key; a local Ollama server does not.
func (c ProviderConfig) usable() bool {
	if !c.Enabled {
		return false
	}
	return c.Type == OllamaName || c.APIKey != ""
}

// NewRegistryFromConfig creates a registry with providers based on configuration.
// Only enabled providers with valid API keys will be registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.Reload(cfg)
	return r
}

// Reload updates the registry based on new configuration.
// Providers that are no longer configured will be unregistered.
// Providers with changed settings will be re-registered.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)
	for name, provCfg := range cfg.Providers {
		if !provCfg.usable() {
			continue
		}
		want[name] = true

		existing, hasExisting := r.configs[name]
		if hasExisting && existing.equal(provCfg) {
			continue
		}
		client := createChatClient(name, provCfg)
		if client == nil {
			if r.logger != nil {
				r.logger.Warn("unknown provider type", "name", name, "type", provCfg.Type)
			}
			continue
		}
		r.clients[name] = client
		r.configs[name] = provCfg
		if r.logger != nil {
			if hasExisting {
				r.logger.Info("updated chat client", "name", name, "type", provCfg.Type)
			} else {
				r.logger.Debug("registered chat client", "name", name, "type", provCfg.Type)
			}
		}
	}

	// Remove providers that are no longer configured
	for name := range r.configs {
		if !want[name] {
			delete(r.clients, name)
			delete(r.configs, name)
			if r.logger != nil {
				r.logger.Info("unregistered chat client", "name", name)
			}
		}
	}
}

// createChatClient creates a chat client based on provider type.
func createChatClient(name string, cfg ProviderConfig) ChatClient {
	switch cfg.Type {
	case OpenAIName:
		return NewOpenAIClient(OpenAIConfig{
			Name:       name,
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Models:     cfg.Models,
			MaxRetries: cfg.MaxRetries,
			Timeout:    cfg.Timeout,
		})
	case OpenRouterName:
		return NewOpenRouterClient(OpenAIConfig{
			Name:       name,
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Models:     cfg.Models,
			MaxRetries: cfg.MaxRetries,
			Timeout:    cfg.Timeout,
		})
	case OllamaName:
		return NewOllamaClient(OllamaConfig{
			Name:    name,
			BaseURL: cfg.BaseURL,
			Models:  cfg.Models,
		})
	default:
		return nil
	}
}
