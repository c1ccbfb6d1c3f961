package generator

//go:generate go tool mockgen -source=copilot_client_wrappers.go -destination=copilot_mocks_test.go -package=generator

import (
	"context"

	copilot "github.com/github/copilot-sdk/go"
)

// copilotSession is the part of a Copilot session the engine talks to.
type copilotSession interface {
	// On subscribes to session events and returns the unsubscribe func.
	On(handler copilot.SessionEventHandler) func()

	// SendAndWait sends one prompt and blocks until the turn is idle.
	SendAndWait(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error)

	SessionID() string
}

// copilotClient is the part of the Copilot SDK client the engine needs,
// narrowed so tests can substitute a gomock double.
type copilotClient interface {
	CreateSession(ctx context.Context, config *copilot.SessionConfig) (copilotSession, error)
	Start(ctx context.Context) error
	Stop() error
}

func newCopilotClient(opts *copilot.ClientOptions) copilotClient {
	return &sdkClient{client: copilot.NewClient(opts)}
}

type sdkClient struct {
	client *copilot.Client
}

func (c *sdkClient) CreateSession(ctx context.Context, config *copilot.SessionConfig) (copilotSession, error) {
	s, err := c.client.CreateSession(ctx, config)
	if err != nil {
		return nil, err
	}
	return &sdkSession{session: s}, nil
}

func (c *sdkClient) Start(ctx context.Context) error { return c.client.Start(ctx) }

func (c *sdkClient) Stop() error { return c.client.Stop() }

// sdkSession adapts *copilot.Session, whose ID is a field rather than a method.
type sdkSession struct {
	session *copilot.Session
}

func (s *sdkSession) On(handler copilot.SessionEventHandler) func() {
	return s.session.On(handler)
}

func (s *sdkSession) SendAndWait(ctx context.Context, options copilot.MessageOptions) (*copilot.SessionEvent, error) {
	return s.session.SendAndWait(ctx, options)
}

func (s *sdkSession) SessionID() string { return s.session.SessionID }
