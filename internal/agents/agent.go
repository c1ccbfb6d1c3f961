// Package agents runs the three Hindi-speaking advisory roles against a
// text generator and threads their answers into one another.
package agents

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spboyer/vitta/internal/generator"
	"github.com/spboyer/vitta/internal/models"
)

// hindiOnlyRule opens every system instruction.
const hindiOnlyRule = "नियम: केवल देवनागरी में और सिर्फ़ हिंदी में उत्तर दें। अंग्रेजी का उपयोग न करें।"

// answerCue closes every user instruction.
const answerCue = "उत्तर (केवल हिंदी में):"

// ErrorPrefix starts the placeholder text returned for a failed call.
const ErrorPrefix = "त्रुटि: "

// Responder is the capability shared by all roles.
type Responder interface {
	Respond(ctx context.Context, task, extra string) string
	History() []models.AgentRecord
}

// Role is the persona data for one stage.
type Role struct {
	// Key is the stage key used in transcripts (models.StageAdvisor, ...).
	Key string
	// Label is the role's Hindi name.
	Label string
	// Persona is the role-specific system instruction.
	Persona string
	// Context is extra system guidance sent with every task.
	Context string
}

// persona returns the configured persona or a generic one built from Label.
func (r Role) persona() string {
	if r.Persona != "" {
		return r.Persona
	}
	return "आप एक " + r.Label + " हैं। केवल हिंदी में उत्तर दें।"
}

// Agent wraps a Generator with a fixed Role and keeps an append-only record
// of every call. An Agent lives for one pipeline run.
type Agent struct {
	role Role
	gen  generator.Generator
	now  func() time.Time

	mu      sync.Mutex
	history []models.AgentRecord
}

// NewAgent creates an agent with an empty history.
func NewAgent(role Role, gen generator.Generator) *Agent {
	return &Agent{role: role, gen: gen, now: time.Now}
}

// Role returns the agent's persona data.
func (a *Agent) Role() Role {
	return a.role
}

// Respond sends task to the generator and returns the trimmed reply. A
// generator failure is recorded and turned into an ErrorPrefix placeholder so
// callers can carry on with the next stage.
func (a *Agent) Respond(ctx context.Context, task, extra string) string {
	system := a.systemInstruction(extra)
	user := userInstruction(task)

	start := time.Now()
	slog.Debug("Agent request", "role", a.role.Key, "systemLen", len(system), "userLen", len(user))

	reply, err := a.gen.Generate(ctx, system, user)
	if err != nil {
		detail := failureDetail(err)
		slog.Warn("Agent call failed", "role", a.role.Key, "error", detail, "duration", time.Since(start))
		a.append(models.AgentRecord{
			Role:      a.role.Label,
			Error:     detail,
			Timestamp: a.now(),
		})
		return ErrorPrefix + detail
	}

	reply = strings.TrimSpace(reply)
	slog.Debug("Agent response", "role", a.role.Key, "responseLen", len(reply), "duration", time.Since(start))

	a.append(models.AgentRecord{
		Role:      a.role.Label,
		Prompt:    task,
		Context:   extra,
		Response:  reply,
		Timestamp: a.now(),
	})
	return reply
}

// History returns a copy of the calls made so far, oldest first.
func (a *Agent) History() []models.AgentRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.AgentRecord(nil), a.history...)
}

func (a *Agent) append(rec models.AgentRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, rec)
}

func (a *Agent) systemInstruction(extra string) string {
	parts := []string{hindiOnlyRule, a.role.persona()}
	if extra = strings.TrimSpace(extra); extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, "\n\n")
}

func userInstruction(task string) string {
	return "प्रश्न: " + strings.TrimSpace(task) + "\n\n" + answerCue
}

// failureDetail prefers the backend's own detail over the wrapped error chain.
func failureDetail(err error) string {
	var genErr *generator.GenerationError
	if errors.As(err, &genErr) && genErr.Detail != "" {
		return genErr.Detail
	}
	return err.Error()
}
