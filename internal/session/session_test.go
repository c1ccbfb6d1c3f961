package session

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spboyer/vitta/internal/models"
)

const testRunID = "3f2a9c1e-7b1d-4c55-9e0a-1d2b3c4d5e6f"

func testGoal() models.GoalInput {
	return models.GoalInput{
		MonthlyIncome:       50000,
		TargetAmount:        1000000,
		Years:               5,
		RiskProfile:         models.RiskMedium,
		AnnualReturnPercent: 12,
	}
}

func TestNewEvent(t *testing.T) {
	data := map[string]any{"key": "value"}
	ev := NewEvent(EventPipelineStart, data)

	if ev.Type != EventPipelineStart {
		t.Errorf("Type = %q, want %q", ev.Type, EventPipelineStart)
	}
	if ev.Data["key"] != "value" {
		t.Errorf("Data[key] = %v, want %q", ev.Data["key"], "value")
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

func TestEventJSON(t *testing.T) {
	ts := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	ev := Event{
		Timestamp: ts,
		Type:      EventAgentResponse,
		Data:      AgentResponseData(testRunID, models.StageAdvisor, "वित्तीय सलाहकार", 420, 1500),
	}

	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Type != EventAgentResponse {
		t.Errorf("decoded.Type = %q, want %q", decoded.Type, EventAgentResponse)
	}
	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("decoded.Timestamp = %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.Data["role"] != "वित्तीय सलाहकार" {
		t.Errorf("role = %v, want the Hindi label", decoded.Data["role"])
	}
}

func TestPipelineStartData(t *testing.T) {
	d := PipelineStartData(testRunID, "openai", "Qwen/Qwen2.5-7B-Instruct", testGoal())
	if d["run_id"] != testRunID {
		t.Errorf("run_id = %v", d["run_id"])
	}
	if d["risk_profile"] != "medium" {
		t.Errorf("risk_profile = %v, want medium", d["risk_profile"])
	}
	if d["years"] != 5 {
		t.Errorf("years = %v", d["years"])
	}
}

func TestAgentErrorData(t *testing.T) {
	d := AgentErrorData(testRunID, models.StageRiskAnalyst, "जोखिम विश्लेषक", "timed out", 30000)
	if d["stage"] != models.StageRiskAnalyst {
		t.Errorf("stage = %v", d["stage"])
	}
	if d["message"] != "timed out" {
		t.Errorf("message = %v", d["message"])
	}
}

func TestErrorData(t *testing.T) {
	d := ErrorData("save failed", map[string]any{"run_id": testRunID})
	if d["message"] != "save failed" {
		t.Errorf("message = %v", d["message"])
	}
	if d["run_id"] != testRunID {
		t.Errorf("run_id = %v", d["run_id"])
	}
}

func TestJSONLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-session.jsonl")

	logger, err := NewJSONLogger(path)
	if err != nil {
		t.Fatalf("NewJSONLogger: %v", err)
	}

	events := []Event{
		NewEvent(EventPipelineStart, PipelineStartData(testRunID, "mock", "mock", testGoal())),
		NewEvent(EventAgentResponse, AgentResponseData(testRunID, models.StageAdvisor, "a", 10, 5)),
		NewEvent(EventAgentError, AgentErrorData(testRunID, models.StageRiskAnalyst, "r", "boom", 5)),
		NewEvent(EventPipelineComplete, PipelineCompleteData(testRunID, 3, 1, 20)),
	}

	for _, ev := range events {
		if err := logger.Log(ev); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	var first Event
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("Unmarshal line 0: %v", err)
	}
	if first.Type != EventPipelineStart {
		t.Errorf("first event type = %q, want %q", first.Type, EventPipelineStart)
	}
}

func TestJSONLoggerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "test.jsonl")

	logger, err := NewJSONLogger(path)
	if err != nil {
		t.Fatalf("NewJSONLogger with subdirectory: %v", err)
	}
	defer logger.Close() //nolint:errcheck

	if logger.Path() != path {
		t.Errorf("Path() = %q, want %q", logger.Path(), path)
	}
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	if err := logger.Log(NewEvent(EventPipelineStart, nil)); err != nil {
		t.Errorf("NopLogger.Log should not error: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("NopLogger.Close should not error: %v", err)
	}
}

func TestDefaultLogPath(t *testing.T) {
	p := DefaultLogPath("/tmp/sessions", testRunID)
	if filepath.Dir(p) != "/tmp/sessions" {
		t.Errorf("dir = %q, want /tmp/sessions", filepath.Dir(p))
	}
	if !strings.HasSuffix(p, "-3f2a9c1e"+LogSuffix) {
		t.Errorf("path = %q, want run id block before %q", p, LogSuffix)
	}

	if p := DefaultLogPath("/tmp/sessions", ""); strings.Count(filepath.Base(p), "-") != 1 {
		t.Errorf("path without run id = %q", p)
	}
}

func TestListSessions(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"20250115T100000Z-session.jsonl",
		"20250116T100000Z-3f2a9c1e-session.jsonl",
		"not-a-session.txt",
	} {
		os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644) //nolint:errcheck
	}

	files, err := ListSessions(dir)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].NumEvents != 1 {
		t.Errorf("NumEvents = %d, want 1", files[0].NumEvents)
	}
}

func TestListSessionsNoDir(t *testing.T) {
	files, err := ListSessions(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("ListSessions on a missing directory: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestReadEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-session.jsonl")

	logger, err := NewJSONLogger(path)
	if err != nil {
		t.Fatalf("NewJSONLogger: %v", err)
	}
	logger.Log(NewEvent(EventPipelineStart, PipelineStartData(testRunID, "mock", "m", testGoal())))      //nolint:errcheck
	logger.Log(NewEvent(EventAgentResponse, AgentResponseData(testRunID, models.StageAdvisor, "a", 1, 1))) //nolint:errcheck
	logger.Log(NewEvent(EventTranscriptSaved, TranscriptSavedData(testRunID, "logs/x.json")))           //nolint:errcheck
	logger.Log(NewEvent(EventPipelineComplete, PipelineCompleteData(testRunID, 3, 0, 100)))            //nolint:errcheck
	logger.Close()                                                                                     //nolint:errcheck

	events, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[0].Type != EventPipelineStart {
		t.Errorf("events[0].Type = %q", events[0].Type)
	}
	if events[3].Type != EventPipelineComplete {
		t.Errorf("events[3].Type = %q", events[3].Type)
	}
}

func TestReadEventsSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-session.jsonl")

	content := `{"timestamp":"2025-01-15T10:00:00Z","type":"pipeline_start","data":{}}
not valid json
{"timestamp":"2025-01-15T10:00:01Z","type":"pipeline_complete","data":{}}
`
	os.WriteFile(path, []byte(content), 0644) //nolint:errcheck

	events, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (malformed line skipped)", len(events))
	}
}

func TestRenderTimeline(t *testing.T) {
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, Type: EventPipelineStart, Data: PipelineStartData(testRunID, "openai", "qwen", testGoal())},
		{Timestamp: base.Add(1200 * time.Millisecond), Type: EventAgentResponse, Data: AgentResponseData(testRunID, models.StageAdvisor, "वित्तीय सलाहकार", 512, 1200)},
		{Timestamp: base.Add(1500 * time.Millisecond), Type: EventAgentError, Data: AgentErrorData(testRunID, models.StageRiskAnalyst, "जोखिम विश्लेषक", "rate limited", 300)},
		{Timestamp: base.Add(2500 * time.Millisecond), Type: EventAgentResponse, Data: AgentResponseData(testRunID, models.StagePlanner, "वित्तीय योजनाकर्त्ता", 900, 1000)},
		{Timestamp: base.Add(2600 * time.Millisecond), Type: EventPipelineComplete, Data: PipelineCompleteData(testRunID, 3, 1, 2600)},
	}

	var buf bytes.Buffer
	RenderTimeline(&buf, events)

	output := buf.String()
	for _, want := range []string{"PIPELINE TIMELINE", "run=3f2a9c1e", "engine=openai", "rate limited", "2/3 stages answered"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q:\n%s", want, output)
		}
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTimeline(&buf, nil)
	if !bytes.Contains(buf.Bytes(), []byte("No events found.")) {
		t.Error("empty events should print 'No events found.'")
	}
}
