package mock

import (
	"context"
	"fmt"
)

// MockSynthesizer is a test double for ai.Synthesizer.
// It allows custom behavior injection via function fields.
type MockSynthesizer struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default canned behavior.
	GenerateAnswerFunc func(ctx context.Context, query, context string) (string, error)

	callCount   int
	lastQuery   string
	lastContext string
}

// NewMockSynthesizer creates a mock synthesizer with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockSynthesizer().
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// GenerateAnswer returns a canned answer referencing the query.
// Default behavior records the inputs and answers deterministically.
func (m *MockSynthesizer) GenerateAnswer(ctx context.Context, query, context string) (string, error) {
	m.callCount++
	m.lastQuery = query
	m.lastContext = context

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, query, context)
	}

	return fmt.Sprintf("mock answer for: %s", query), nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockSynthesizer) CallCount() int {
	return m.callCount
}

// LastQuery returns the query passed to the most recent call.
func (m *MockSynthesizer) LastQuery() string {
	return m.lastQuery
}

// LastContext returns the context passed to the most recent call.
func (m *MockSynthesizer) LastContext() string {
	return m.lastContext
}

// Reset clears the call count, recorded inputs, and custom functions.
func (m *MockSynthesizer) Reset() {
	m.callCount = 0
	m.lastQuery = ""
	m.lastContext = ""
	m.GenerateAnswerFunc = nil
}
