package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Defaults for the openai engine, which talks to the Hugging Face inference
// router through its OpenAI-compatible chat completions API.
const (
	DefaultBaseURL     = "https://router.huggingface.co/v1"
	DefaultModel       = "Qwen/Qwen2.5-7B-Instruct"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
)

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	options     OpenAIOptions
	client      *openai.Client
}

// NewOpenAIGenerator validates cfg and builds a client for it.
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, fmt.Errorf("openai engine requires an API token")
	}

	var opts OpenAIOptions
	if err := decodeOptions(EngineOpenAI, cfg.Options, &opts); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIToken)
	clientCfg.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if opts.Organization != "" {
		clientCfg.OrgID = opts.Organization
	}

	g := &OpenAIGenerator{
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		options:     opts,
		client:      openai.NewClientWithConfig(clientCfg),
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	return g, nil
}

// Generate sends one system and one user message and returns the first choice.
func (g *OpenAIGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		TopP:        g.options.TopP,
		Seed:        g.options.Seed,
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", newGenerationError(EngineOpenAI, err)
	}

	slog.Debug("Chat completion finished",
		"engine", EngineOpenAI,
		"model", g.model,
		"durationMs", time.Since(start).Milliseconds(),
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", newGenerationError(EngineOpenAI, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// Shutdown is a no-op; the HTTP client holds no per-engine resources.
func (g *OpenAIGenerator) Shutdown(ctx context.Context) error {
	return nil
}
