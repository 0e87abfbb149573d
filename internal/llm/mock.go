package llm

import (
	"context"
	"sync"
)

// MockProvider is a test provider that records calls and returns canned
// responses. Errs, when set, is consumed one entry per call before
// falling back to Response.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CompletionRequest
	Response *CompletionResponse
	Errs     []error
	ProvName string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		ProvName: name,
		Response: &CompletionResponse{
			ID:    "cmpl-mock",
			Model: "mock-model",
			Choices: []Choice{
				{Index: 0, Text: "\nmock trend description", FinishReason: "stop"},
			},
			InputTokens:  10,
			OutputTokens: 20,
		},
	}
}

func (m *MockProvider) Name() string {
	return m.ProvName
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.Errs) > 0 {
		err := m.Errs[0]
		m.Errs = m.Errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.Response, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
