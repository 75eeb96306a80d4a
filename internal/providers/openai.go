package providers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jackzampolin/myprompts/internal/response"
)

const (
	OpenAIName        = "openai"
	OpenRouterName    = "openrouter"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	openAIDefaultModel = "gpt-4o"
)

// OpenAIConfig holds configuration for an OpenAI-compatible chat client.
type OpenAIConfig struct {
	Name       string        // Vendor name (default: "openai")
	APIKey     string
	BaseURL    string        // Optional; OpenRouter and tests set this
	Models     []string      // Served families; first is the default
	MaxRetries int           // SDK transport retries (default: 2)
	Timeout    time.Duration // HTTP timeout; zero means none
	Headers    map[string]string
	HTTPClient *http.Client // Optional (tests)
}

// OpenAIClient implements ChatClient using the official OpenAI SDK.
// It also serves OpenRouter, which speaks the same API.
type OpenAIClient struct {
	name   string
	models []string
	client openai.Client
}

// NewOpenAIClient creates a new OpenAI-compatible chat client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Name == "" {
		cfg.Name = OpenAIName
	}
	if len(cfg.Models) == 0 {
		cfg.Models = []string{openAIDefaultModel}
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	for k, v := range cfg.Headers {
		opts = append(opts, option.WithHeader(k, v))
	}

	return &OpenAIClient{
		name:   cfg.Name,
		models: cfg.Models,
		client: openai.NewClient(opts...),
	}
}

// NewOpenRouterClient creates a chat client for the OpenRouter API.
func NewOpenRouterClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Name == "" {
		cfg.Name = OpenRouterName
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = OpenRouterBaseURL
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{
			"HTTP-Referer": "https://github.com/jackzampolin/myprompts",
			"X-Title":      "myprompts",
		}
	}
	return NewOpenAIClient(cfg)
}

// Name returns the vendor identifier.
func (c *OpenAIClient) Name() string {
	return c.name
}

// Models returns the served model families.
func (c *OpenAIClient) Models() []string {
	return c.models
}

// Stream sends a streaming chat completion request.
func (c *OpenAIClient) Stream(ctx context.Context, req *ChatRequest) (response.Stream, error) {
	model := req.Model
	if model == "" {
		model = c.models[0]
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	// The SDK performs the HTTP request here; a failed request is reported
	// through Err before the first Next.
	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return response.Stream{}, wrapOpenAIError(err)
	}

	text := make(chan string, 64)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(text)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case text <- delta:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if err := stream.Err(); err != nil {
			errs <- wrapOpenAIError(err)
		}
	}()

	return response.Stream{Text: text, Err: errs}, nil
}

// wrapOpenAIError converts API errors into ModelError. Transport and context
// errors are returned unchanged.
func wrapOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.StatusCode)
	}
	code := apiErr.Code
	if code == "" {
		code = strconv.Itoa(apiErr.StatusCode)
	}
	return &ModelError{Message: msg, Code: code, Cause: err}
}
