package session

import (
	"time"

	"github.com/spboyer/vitta/internal/models"
)

// EventType identifies the kind of session event.
type EventType string

const (
	EventPipelineStart    EventType = "pipeline_start"
	EventPipelineComplete EventType = "pipeline_complete"
	EventAgentResponse    EventType = "agent_response"
	EventAgentError       EventType = "agent_error"
	EventTranscriptSaved  EventType = "transcript_saved"
	EventError            EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// PipelineStartData returns event data for the start of a pipeline run.
func PipelineStartData(runID, engine, model string, in models.GoalInput) map[string]any {
	return map[string]any{
		"run_id":        runID,
		"engine":        engine,
		"model":         model,
		"target_amount": in.TargetAmount,
		"years":         in.Years,
		"risk_profile":  in.RiskProfile.Key(),
	}
}

// PipelineCompleteData returns event data for the end of a pipeline run.
func PipelineCompleteData(runID string, stages, failed int, durationMs int64) map[string]any {
	return map[string]any{
		"run_id":      runID,
		"stages":      stages,
		"failed":      failed,
		"duration_ms": durationMs,
	}
}

// AgentResponseData returns event data for a successful agent call.
func AgentResponseData(runID, stage, role string, responseChars int, durationMs int64) map[string]any {
	return map[string]any{
		"run_id":         runID,
		"stage":          stage,
		"role":           role,
		"response_chars": responseChars,
		"duration_ms":    durationMs,
	}
}

// AgentErrorData returns event data for a failed agent call.
func AgentErrorData(runID, stage, role, message string, durationMs int64) map[string]any {
	return map[string]any{
		"run_id":      runID,
		"stage":       stage,
		"role":        role,
		"message":     message,
		"duration_ms": durationMs,
	}
}

// TranscriptSavedData returns event data for a written transcript.
func TranscriptSavedData(runID, path string) map[string]any {
	return map[string]any{
		"run_id": runID,
		"path":   path,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
