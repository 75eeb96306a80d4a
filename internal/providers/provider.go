package providers

import (
	"context"
	"fmt"

	"github.com/jackzampolin/myprompts/internal/response"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatClient streams chat completions from one vendor.
type ChatClient interface {
	// Name returns the vendor identifier (e.g., "openai").
	Name() string

	// Models returns the model families this client serves.
	// An empty list means any family is accepted.
	Models() []string

	// Stream sends a chat request. Request-stage failures are returned
	// directly; once the request is accepted, fragments and any later
	// failure arrive on the returned stream.
	Stream(ctx context.Context, req *ChatRequest) (response.Stream, error)
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatRequest is a request to a chat model.
type ChatRequest struct {
	// Model is the family to use.
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`

	// Request tracking
	RequestID string `json:"-"`
}

// ModelError is a failure reported by the model service itself, as opposed
// to a transport or programming error.
type ModelError struct {
	Message string
	Code    string
	Cause   error
}

func (e *ModelError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("model error: %s", e.Message)
	}
	return fmt.Sprintf("model error: %s (code %s)", e.Message, e.Code)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Model is a selected vendor/family pair bound to the client that serves it.
type Model struct {
	Vendor string `json:"vendor" yaml:"vendor"`
	Family string `json:"family" yaml:"family"`
	client ChatClient
}

// NewModel binds a vendor/family pair to client.
func NewModel(client ChatClient, family string) *Model {
	return &Model{Vendor: client.Name(), Family: family, client: client}
}

// ID returns "vendor/family".
func (m *Model) ID() string {
	return m.Vendor + "/" + m.Family
}

// SendRequest streams a reply to messages from this model.
func (m *Model) SendRequest(ctx context.Context, messages []Message, requestID string) (response.Stream, error) {
	return m.client.Stream(ctx, &ChatRequest{
		Model:     m.Family,
		Messages:  messages,
		RequestID: requestID,
	})
}
