package agents

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/vitta/internal/generator"
	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/session"
)

// Outcome is the result of one pipeline run. Advisor, Risk and Plan are
// always set; a failed stage contributes its ErrorPrefix placeholder.
type Outcome struct {
	RunID     string
	Input     models.GoalInput
	Sip       models.SipResult
	Advisor   string
	Risk      string
	Plan      string
	Records   []models.AgentRecord
	StartedAt time.Time
}

// Failed counts the stages whose generator call failed.
func (o *Outcome) Failed() int {
	n := 0
	for _, r := range o.Records {
		if r.Failed() {
			n++
		}
	}
	return n
}

// PipelineRun converts the outcome into the persisted run shape.
func (o *Outcome) PipelineRun() models.PipelineRun {
	return models.PipelineRun{
		RunID:       o.RunID,
		Input:       o.Input,
		Sip:         o.Sip,
		AdvisorText: o.Advisor,
		RiskText:    o.Risk,
		PlanText:    o.Plan,
		Timestamp:   o.StartedAt,
	}
}

// Pipeline runs advisor, risk analyst and planner in that order.
type Pipeline struct {
	Generator generator.Generator

	// RunID identifies the run in logs and transcripts. A random UUID is
	// used when empty.
	RunID string

	// Engine and Model label session log events.
	Engine string
	Model  string

	// Events receives pipeline and per-stage events. Nil disables them.
	Events session.Logger

	// OnStage, when set, is called before each stage starts.
	OnStage func(role Role, num, total int)
}

// RunPipeline runs a pipeline with no session log or progress callback.
func RunPipeline(ctx context.Context, gen generator.Generator, in models.GoalInput, sip models.SipResult) *Outcome {
	p := &Pipeline{Generator: gen}
	return p.Run(ctx, in, sip)
}

// Run executes the three stages sequentially with fresh agents. Each stage's
// task embeds the text returned by every stage before it.
func (p *Pipeline) Run(ctx context.Context, in models.GoalInput, sip models.SipResult) *Outcome {
	runID := p.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	out := &Outcome{
		RunID:     runID,
		Input:     in,
		Sip:       sip,
		StartedAt: time.Now(),
	}

	slog.Info("Starting advisory pipeline", "runID", out.RunID, "years", in.Years, "risk", in.RiskProfile.Key())
	p.log(session.EventPipelineStart, session.PipelineStartData(out.RunID, p.Engine, p.Model, in))

	advisor := NewAgent(AdvisorRole, p.Generator)
	risk := NewAgent(RiskAnalystRole, p.Generator)
	planner := NewAgent(PlannerRole, p.Generator)

	out.Advisor = p.stage(ctx, out, advisor, 1, AdvisorTask(in, sip))
	out.Risk = p.stage(ctx, out, risk, 2, RiskTask(in, sip, out.Advisor))
	out.Plan = p.stage(ctx, out, planner, 3, PlannerTask(in, sip, out.Advisor, out.Risk))

	for _, a := range []*Agent{advisor, risk, planner} {
		out.Records = append(out.Records, a.History()...)
	}

	elapsed := time.Since(out.StartedAt)
	slog.Info("Advisory pipeline finished", "runID", out.RunID, "failedStages", out.Failed(), "duration", elapsed)
	p.log(session.EventPipelineComplete, session.PipelineCompleteData(out.RunID, stageCount, out.Failed(), elapsed.Milliseconds()))

	return out
}

const stageCount = 3

func (p *Pipeline) stage(ctx context.Context, out *Outcome, a *Agent, num int, task string) string {
	role := a.Role()
	if p.OnStage != nil {
		p.OnStage(role, num, stageCount)
	}

	start := time.Now()
	text := a.Respond(ctx, task, role.Context)
	durationMs := time.Since(start).Milliseconds()

	history := a.History()
	if n := len(history); n > 0 && history[n-1].Failed() {
		p.log(session.EventAgentError, session.AgentErrorData(out.RunID, role.Key, role.Label, history[n-1].Error, durationMs))
	} else {
		p.log(session.EventAgentResponse, session.AgentResponseData(out.RunID, role.Key, role.Label, len([]rune(text)), durationMs))
	}
	return text
}

func (p *Pipeline) log(t session.EventType, data map[string]any) {
	if p.Events == nil {
		return
	}
	if err := p.Events.Log(session.NewEvent(t, data)); err != nil {
		slog.Warn("Failed to write session event", "type", t, "error", err)
	}
}
