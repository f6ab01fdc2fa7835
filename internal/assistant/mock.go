package assistant

import (
	"context"
	"sync"
)

// MockGenerator is a Generator for tests and offline use.
type MockGenerator struct {
	Response string // Returned when Func is nil
	Err      error  // Returned when Func is nil

	// Func, when set, produces the result instead of Response/Err
	Func func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// Generate records prompt and returns the configured result.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Func != nil {
		return m.Func(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts returns every prompt received so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
