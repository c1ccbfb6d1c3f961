package generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/spboyer/vitta/internal/utils"
)

// MockCall is one request seen by a MockGenerator.
type MockCall struct {
	System string
	User   string
}

// MockGenerator answers every request locally. It is used for offline runs
// (--engine mock) and in tests.
type MockGenerator struct {
	model string

	mu    sync.Mutex
	calls []MockCall
}

// NewMockGenerator creates a mock that labels its answers with model.
func NewMockGenerator(model string) *MockGenerator {
	if model == "" {
		model = "mock"
	}
	return &MockGenerator{model: model}
}

// Generate records the call and returns a canned Hindi reply that quotes the
// start of the user instruction.
func (m *MockGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newGenerationError(EngineMock, err)
	}

	m.mu.Lock()
	m.calls = append(m.calls, MockCall{System: system, User: user})
	n := len(m.calls)
	m.mu.Unlock()

	return fmt.Sprintf("नमूना उत्तर %d (%s): %s", n, m.model, utils.Shorten(user, 80)), nil
}

// Calls returns a copy of the requests seen so far.
func (m *MockGenerator) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// Shutdown is a no-op.
func (m *MockGenerator) Shutdown(ctx context.Context) error {
	return nil
}
