// Package transcript persists one JSON document per pipeline run and reads
// them back.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/utils"
	"github.com/spboyer/vitta/internal/validation"
)

const (
	// DefaultDir is the transcript directory used when none is configured.
	DefaultDir = "logs"

	// DefaultSummaryLength bounds the one-line summary of each agent output.
	DefaultSummaryLength = 100

	// SchemaVersion is written to metadata.version.
	SchemaVersion = "1.0"

	// SystemName is written to metadata.system.
	SystemName = "Multi-Agent Hindi Finance Advisor"

	// ReadableLayout formats date_readable and RunInfo.TimestampReadable.
	ReadableLayout = "02 January 2006, 03:04 PM"

	filenamePrefix = "finance_plan_"
	filenameLayout = "20060102_150405"
)

// Role labels written to agent_outputs.*.role.
const (
	AdvisorLabel     = "सलाहकार (Advisor)"
	RiskAnalystLabel = "जोखिम विश्लेषक (Risk Analyst)"
	PlannerLabel     = "योजनाकर्त्ता (Planner)"
)

var namePattern = regexp.MustCompile(`^finance_plan_\d{8}_\d{6}\.json$`)

// ErrNotFound is returned by Load when the transcript file does not exist.
var ErrNotFound = errors.New("transcript not found")

// ErrInvalidName is returned when a name does not follow the
// finance_plan_YYYYMMDD_HHMMSS.json convention.
var ErrInvalidName = errors.New("invalid transcript name")

// ParseError is returned by Load when a file is not a well-formed transcript.
type ParseError struct {
	Path string
	// Err is set when the file is not valid JSON or does not decode.
	Err error
	// Problems lists schema violations.
	Problems []string
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse transcript %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse transcript %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Filename returns the transcript filename for a save at ts. Two saves in
// the same second share a name.
func Filename(ts time.Time) string {
	return filenamePrefix + ts.Format(filenameLayout) + ".json"
}

// IsTranscriptName reports whether name follows the naming convention.
func IsTranscriptName(name string) bool {
	return namePattern.MatchString(name)
}

// Store reads and writes transcripts in one directory.
type Store struct {
	Dir string
	// SummaryLength bounds each agent summary. Zero means DefaultSummaryLength.
	SummaryLength int
	// Now is the clock used for timestamps and filenames.
	Now func() time.Time
}

// NewStore returns a store rooted at dir, or DefaultDir when dir is empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{Dir: dir, SummaryLength: DefaultSummaryLength, Now: time.Now}
}

// Build assembles the transcript document for run as saved at ts.
func (s *Store) Build(run models.PipelineRun, ts time.Time) *models.Transcript {
	n := s.SummaryLength
	if n <= 0 {
		n = DefaultSummaryLength
	}
	output := func(role, text string) models.AgentOutput {
		return models.AgentOutput{Role: role, Output: text, Summary: utils.Shorten(text, n)}
	}

	return &models.Transcript{
		Timestamp:    ts,
		DateReadable: ts.Format(ReadableLayout),
		UserInput:    run.Input,
		Calculations: run.Sip,
		AgentOutputs: models.AgentOutputs{
			Advisor:     output(AdvisorLabel, run.AdvisorText),
			RiskAnalyst: output(RiskAnalystLabel, run.RiskText),
			Planner:     output(PlannerLabel, run.PlanText),
		},
		Metadata: models.TranscriptMetadata{
			Version: SchemaVersion,
			System:  SystemName,
			RunID:   run.RunID,
		},
	}
}

// Save writes run to a new file in the store directory, creating the
// directory if needed, and returns the file path. A save in the same second
// as an earlier one overwrites it.
func (s *Store) Save(run models.PipelineRun) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	ts := s.now()
	path := filepath.Join(s.Dir, Filename(ts))

	data, err := Marshal(s.Build(run, ts))
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

// Path resolves a transcript name inside the store directory.
func (s *Store) Path(name string) (string, error) {
	if !IsTranscriptName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.Dir, name), nil
}

// Open loads the transcript called name from the store directory.
func (s *Store) Open(name string) (*models.Transcript, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// List enumerates the store directory. See List.
func (s *Store) List() ([]models.RunInfo, error) {
	return List(s.Dir)
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Save writes run into dir with the default store settings.
func Save(dir string, run models.PipelineRun) (string, error) {
	return NewStore(dir).Save(run)
}

// Marshal encodes t as indented UTF-8 JSON, keeping non-ASCII text and
// HTML characters literal.
func Marshal(t *models.Transcript) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the transcript at path. It returns an error wrapping
// ErrNotFound when the file is missing and a *ParseError when the content is
// not a well-formed transcript.
func Load(path string) (*models.Transcript, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	if !json.Valid(data) {
		var probe any
		return nil, &ParseError{Path: path, Err: json.Unmarshal(data, &probe)}
	}
	if problems := validation.ValidateTranscriptBytes(data); len(problems) > 0 {
		return nil, &ParseError{Path: path, Problems: problems}
	}

	var t models.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &t, nil
}

// List returns the transcripts in dir, newest first, using file modification
// times. A missing directory yields an empty list.
func List(dir string) ([]models.RunInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.RunInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading transcript directory: %w", err)
	}

	runs := []models.RunInfo{}
	for _, e := range entries {
		if e.IsDir() || !IsTranscriptName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		mod := info.ModTime()
		runs = append(runs, models.RunInfo{
			Filename:          e.Name(),
			FilePath:          filepath.Join(dir, e.Name()),
			Timestamp:         mod,
			TimestampReadable: mod.Format(ReadableLayout),
			SizeBytes:         info.Size(),
			SizeKB:            kilobytes(info.Size()),
		})
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Filename > runs[j].Filename
		}
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func kilobytes(n int64) float64 {
	return decimal.NewFromInt(n).Div(decimal.NewFromInt(1024)).Round(2).InexactFloat64()
}
