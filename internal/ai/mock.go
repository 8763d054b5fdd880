package ai

import (
	"context"
	"strings"
	"sync"
)

// MockClient is a deterministic test implementation of CompletionClient. It
// records every request and answers from an explicit queue when one is set,
// otherwise with canned responses chosen by inspecting the system prompt.
type MockClient struct {
	Err   error
	queue []string
	Calls []CompletionRequest
	mu    sync.Mutex
}

// NewMockClient creates a mock completion client with canned defaults.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Enqueue adds a response returned before any canned default, in FIFO order.
func (m *MockClient) Enqueue(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, response)
}

// Fail makes every subsequent call return err.
func (m *MockClient) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// LastCall returns the most recent request, or nil when none were made.
func (m *MockClient) LastCall() *CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// Complete records the request and returns a queued or canned response.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.Err != nil {
		return "", m.Err
	}

	if len(m.queue) > 0 {
		response := m.queue[0]
		m.queue = m.queue[1:]
		return response, nil
	}

	switch {
	case strings.Contains(req.System, "financial transaction parser"):
		return `{"amount": 12.50, "description": "Coffee", "date": "2025-01-15", "category": "Dining Out", "confidence": 0.9}`, nil
	case strings.Contains(req.System, "transaction categorizer"):
		return `{"category": "Groceries", "confidence": 0.95, "reasoning": "Looks like a grocery store."}`, nil
	case strings.Contains(req.System, "insight analyzer"):
		return `{"insights": [{"type": "pattern", "title": "Steady grocery spending", "message": "Your grocery spending has been consistent.", "priority": "low", "actionable": false}]}`, nil
	case strings.Contains(req.System, "savings goals"):
		return `{"goals": [{"name": "Emergency Fund", "targetAmount": 3000, "timeframeMonths": 6, "priority": "high", "strategy": "Save $500 per month.", "rationale": "You have no emergency cushion yet."}]}`, nil
	default:
		return "I'm here to help with your budget!", nil
	}
}
