package providers

import (
	"context"
	"sync"

	"github.com/jackzampolin/myprompts/internal/response"
)

const MockClientName = "mock"

// MockClient is a ChatClient for testing.
type MockClient struct {
	// Configurable behavior
	Vendor     string   // Defaults to "mock"
	Families   []string // Served families
	Fragments  []string // Streamed reply
	RequestErr error    // Returned from Stream
	StreamErr  error    // Delivered after Fragments

	mu       sync.Mutex
	requests []ChatRequest
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		Families:  []string{"mock-1"},
		Fragments: []string{"mock response"},
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	if c.Vendor == "" {
		return MockClientName
	}
	return c.Vendor
}

// Models returns the served families.
func (c *MockClient) Models() []string {
	return c.Families
}

// Stream records the request and replays the configured fragments.
func (c *MockClient) Stream(ctx context.Context, req *ChatRequest) (response.Stream, error) {
	c.mu.Lock()
	c.requests = append(c.requests, *req)
	c.mu.Unlock()

	if c.RequestErr != nil {
		return response.Stream{}, c.RequestErr
	}
	return response.FromFragments(ctx, c.Fragments, c.StreamErr), nil
}

// Requests returns the requests received so far.
func (c *MockClient) Requests() []ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatRequest, len(c.requests))
	copy(out, c.requests)
	return out
}
