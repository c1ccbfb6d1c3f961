package models

import "time"

// Keys used for the three pipeline stages in transcripts and session logs.
const (
	StageAdvisor     = "advisor"
	StageRiskAnalyst = "risk_analyst"
	StagePlanner     = "planner"
)

// AgentRecord is one generation call made by an agent. Failed calls carry
// Error and leave Prompt, Context and Response empty.
type AgentRecord struct {
	Role      string    `json:"role"`
	Prompt    string    `json:"prompt,omitempty"`
	Context   string    `json:"context,omitempty"`
	Response  string    `json:"response,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Failed reports whether the record describes a failed call.
func (r AgentRecord) Failed() bool {
	return r.Error != ""
}

// PipelineRun is one complete advisor → risk analyst → planner run.
type PipelineRun struct {
	RunID       string
	Input       GoalInput
	Sip         SipResult
	AdvisorText string
	RiskText    string
	PlanText    string
	Timestamp   time.Time
}
