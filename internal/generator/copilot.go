package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	copilot "github.com/github/copilot-sdk/go"
	"github.com/spboyer/vitta/internal/utils"
)

// CopilotGenerator generates text through the GitHub Copilot SDK. Each
// Generate call runs in a fresh session so calls never share history.
type CopilotGenerator struct {
	model   string
	timeout time.Duration
	client  copilotClient

	startOnce sync.Once
	startErr  error
	stopOnce  sync.Once
}

// CopilotGeneratorOptions lets tests substitute the SDK client.
type CopilotGeneratorOptions struct {
	NewCopilotClient func(clientOptions *copilot.ClientOptions) copilotClient
}

// NewCopilotGenerator builds a generator for cfg. The Copilot CLI is started
// lazily on the first Generate call.
func NewCopilotGenerator(cfg Config, options *CopilotGeneratorOptions) (*CopilotGenerator, error) {
	var opts CopilotOptions
	if err := decodeOptions(EngineCopilot, cfg.Options, &opts); err != nil {
		return nil, err
	}

	clientOptions := &copilot.ClientOptions{
		LogLevel:  "error",
		AutoStart: copilot.Bool(false),
		CLIPath:   opts.CLIPath,
	}
	if opts.LogLevel != "" {
		clientOptions.LogLevel = opts.LogLevel
	}

	newClient := newCopilotClient
	if options != nil && options.NewCopilotClient != nil {
		newClient = options.NewCopilotClient
	}

	return &CopilotGenerator{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		client:  newClient(clientOptions),
	}, nil
}

// Generate sends the combined instructions as a single prompt and returns the
// assistant's reply.
func (g *CopilotGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	g.startOnce.Do(func() {
		g.startErr = g.client.Start(ctx)
	})
	if g.startErr != nil {
		return "", newGenerationError(EngineCopilot, fmt.Errorf("copilot failed to start: %w", g.startErr))
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	session, err := g.client.CreateSession(ctx, &copilot.SessionConfig{
		Model:               g.model,
		OnPermissionRequest: denyAllTools,
	})
	if err != nil {
		return "", newGenerationError(EngineCopilot, fmt.Errorf("failed to create session: %w", err))
	}

	collector := &replyCollector{}

	unsubscribe := session.On(collector.On)
	defer unsubscribe()

	unsubscribe = session.On(utils.SessionToSlog)
	defer unsubscribe()

	slog.Debug("Copilot session created", "sessionID", session.SessionID(), "model", g.model)

	if _, err := session.SendAndWait(ctx, copilot.MessageOptions{Prompt: composePrompt(system, user)}); err != nil {
		return "", newGenerationError(EngineCopilot, err)
	}

	reply, errMsg := collector.Result()
	if errMsg != "" {
		return "", newGenerationError(EngineCopilot, errors.New(errMsg))
	}
	if strings.TrimSpace(reply) == "" {
		return "", newGenerationError(EngineCopilot, ErrEmptyResponse)
	}
	return reply, nil
}

// Shutdown stops the Copilot CLI process.
func (g *CopilotGenerator) Shutdown(ctx context.Context) error {
	var err error
	g.stopOnce.Do(func() {
		err = g.client.Stop()
	})
	if err != nil {
		return fmt.Errorf("failed to stop copilot client: %w", err)
	}
	return nil
}

// composePrompt folds the system instruction into the single prompt a Copilot
// session accepts.
func composePrompt(system, user string) string {
	return strings.TrimSpace(system) + "\n\n" + strings.TrimSpace(user)
}

func denyAllTools(request copilot.PermissionRequest, invocation copilot.PermissionInvocation) (copilot.PermissionRequestResult, error) {
	return copilot.PermissionRequestResult{Kind: "denied-by-rules"}, nil
}

// replyCollector gathers assistant messages and session errors delivered on
// the SDK's event goroutine.
type replyCollector struct {
	mu     sync.Mutex
	parts  []string
	errMsg string
}

func (c *replyCollector) On(event copilot.SessionEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case copilot.AssistantMessage:
		if event.Data.Content != nil {
			c.parts = append(c.parts, *event.Data.Content)
		}
	case copilot.SessionError:
		c.errMsg = "session failed with unknown error"
		if event.Data.Message != nil && *event.Data.Message != "" {
			c.errMsg = *event.Data.Message
		}
	}
}

func (c *replyCollector) Result() (reply string, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.parts, "\n"), c.errMsg
}
