package providers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is a Client for testing: canned responses, scripted failures,
// and recorded prompts.
type MockClient struct {
	Latency  time.Duration
	Response string
	Err      error

	// FailFirst makes the first N calls fail with Err (or a transient
	// error when Err is nil), then succeed.
	FailFirst int

	mu         sync.Mutex
	lastSystem string
	lastUser   string
	calls      atomic.Int64
}

// NewMockClient creates a mock with a canned JSON-free response.
func NewMockClient() *MockClient {
	return &MockClient{Response: "mock response"}
}

// Name returns the client identifier.
func (c *MockClient) Name() string { return MockClientName }

// Generate records the prompts and returns the configured response.
func (c *MockClient) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	count := c.calls.Add(1)

	c.mu.Lock()
	c.lastSystem = systemPrompt
	c.lastUser = userMessage
	c.mu.Unlock()

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if c.Err != nil && (c.FailFirst == 0 || count <= int64(c.FailFirst)) {
		return "", c.Err
	}
	if c.Err == nil && c.FailFirst > 0 && count <= int64(c.FailFirst) {
		return "", &TransientError{Err: context.DeadlineExceeded}
	}
	return c.Response, nil
}

// Calls returns how many times Generate ran.
func (c *MockClient) Calls() int64 { return c.calls.Load() }

// LastPrompts returns the most recent system and user prompts.
func (c *MockClient) LastPrompts() (system, user string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSystem, c.lastUser
}

var _ Client = (*MockClient)(nil)
