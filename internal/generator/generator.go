// Package generator is the boundary to hosted text-generation models. Every
// backend turns a system instruction and a user instruction into text, and
// reports any transport, authentication or model failure as a
// *GenerationError.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Engine names accepted by New.
const (
	EngineOpenAI  = "openai"
	EngineCopilot = "copilot"
	EngineMock    = "mock"
)

// Generator produces text for one system/user instruction pair.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Engine is a Generator that owns resources released by Shutdown.
type Engine interface {
	Generator

	// Shutdown releases the backend. It is safe to call more than once.
	Shutdown(ctx context.Context) error
}

// Config selects and parameterizes a backend.
type Config struct {
	Engine      string
	Model       string
	BaseURL     string
	APIToken    string
	Temperature float64
	MaxTokens   int
	// Timeout bounds a single Generate call. Zero means no bound.
	Timeout time.Duration
	// Options holds engine-specific settings, decoded per engine.
	Options map[string]any
}

// GenerationError is returned for every failed Generate call.
type GenerationError struct {
	Engine string
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %s", e.Engine, e.Detail)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrEmptyResponse is wrapped when a backend answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

func newGenerationError(engine string, err error) *GenerationError {
	detail := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		detail = "timed out waiting for the model: " + detail
	}
	return &GenerationError{Engine: engine, Detail: detail, Err: err}
}

// New builds the engine named by cfg.Engine.
func New(cfg Config) (Engine, error) {
	switch cfg.Engine {
	case EngineOpenAI, "":
		return NewOpenAIGenerator(cfg)
	case EngineCopilot:
		return NewCopilotGenerator(cfg, nil)
	case EngineMock:
		return NewMockGenerator(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown generator engine %q (want %s, %s or %s)", cfg.Engine, EngineOpenAI, EngineCopilot, EngineMock)
	}
}

// withTimeout applies d to ctx when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
