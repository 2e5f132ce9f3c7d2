package llm

import (
	"context"
	"sync"
)

// MockResponse is one canned reply of a MockProvider.
type MockResponse struct {
	Content string
	Usage   Usage
	Err     error

	// Model is reported as the serving model. Empty means "mock".
	Model string
}

// MockProvider replays canned replies in order and records every request.
// It backs tests and the "mock" provider setting.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider queues responses for successive Generate calls.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate records req and pops the next reply. A done ctx is reported
// before a reply is consumed; an empty queue looks like an outage.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	model := next.Model
	if model == "" {
		model = m.ModelID()
	}
	content, err := structuredContent(req, next.Content)
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      next.Usage,
		Model:      model,
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
