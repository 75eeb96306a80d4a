package providers

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/jackzampolin/myprompts/internal/response"
)

const (
	OllamaName           = "ollama"
	OllamaDefaultBaseURL = "http://localhost:11434"
)

// OllamaConfig holds configuration for a local Ollama server.
type OllamaConfig struct {
	Name    string // Vendor name (default: "ollama")
	BaseURL string
	Models  []string
}

// OllamaClient implements ChatClient against an Ollama server via langchaingo.
// Ollama reports request failures only while streaming, so every failure
// arrives on the stream.
type OllamaClient struct {
	name    string
	baseURL string
	models  []string
}

// NewOllamaClient creates a new Ollama chat client.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.Name == "" {
		cfg.Name = OllamaName
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaDefaultBaseURL
	}
	return &OllamaClient{
		name:    cfg.Name,
		baseURL: cfg.BaseURL,
		models:  cfg.Models,
	}
}

// Name returns the vendor identifier.
func (c *OllamaClient) Name() string {
	return c.name
}

// Models returns the served model families.
func (c *OllamaClient) Models() []string {
	return c.models
}

// Stream sends a chat request and streams the reply.
func (c *OllamaClient) Stream(ctx context.Context, req *ChatRequest) (response.Stream, error) {
	model := req.Model
	if model == "" && len(c.models) > 0 {
		model = c.models[0]
	}
	if model == "" {
		return response.Stream{}, fmt.Errorf("ollama: no model specified")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(c.baseURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return response.Stream{}, fmt.Errorf("failed to create ollama client: %w", err)
	}

	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	text := make(chan string, 64)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(text)

		_, err := llm.GenerateContent(ctx, content, llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			select {
			case text <- string(chunk):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}))
		if err != nil {
			errs <- fmt.Errorf("ollama %s: %w", model, err)
		}
	}()

	return response.Stream{Text: text, Err: errs}, nil
}
