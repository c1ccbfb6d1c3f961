package models

import "time"

// Transcript is the JSON document written once per pipeline run.
type Transcript struct {
	Timestamp    time.Time          `json:"timestamp"`
	DateReadable string             `json:"date_readable"`
	UserInput    GoalInput          `json:"user_input"`
	Calculations SipResult          `json:"calculations"`
	AgentOutputs AgentOutputs       `json:"agent_outputs"`
	Metadata     TranscriptMetadata `json:"metadata"`
}

// AgentOutputs holds the three stage outputs under their fixed keys.
type AgentOutputs struct {
	Advisor     AgentOutput `json:"advisor"`
	RiskAnalyst AgentOutput `json:"risk_analyst"`
	Planner     AgentOutput `json:"planner"`
}

// AgentOutput is a single stage's full text plus a one-line summary.
type AgentOutput struct {
	Role    string `json:"role"`
	Output  string `json:"output"`
	Summary string `json:"summary"`
}

// TranscriptMetadata identifies the writer of a transcript.
type TranscriptMetadata struct {
	Version string `json:"version"`
	System  string `json:"system"`
	RunID   string `json:"run_id,omitempty"`
}

// RunInfo describes a transcript file on disk.
type RunInfo struct {
	Filename          string    `json:"filename"`
	FilePath          string    `json:"filepath"`
	Timestamp         time.Time `json:"timestamp"`
	TimestampReadable string    `json:"timestamp_readable"`
	SizeBytes         int64     `json:"size_bytes"`
	SizeKB            float64   `json:"size_kb"`
}
