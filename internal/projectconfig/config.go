// Package projectconfig provides the ProjectConfig struct and loader for
// .vitta.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".vitta.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultLogsDir     = "logs"
	DefaultSessionsDir = "sessions"

	DefaultEngine      = "openai"
	DefaultModel       = "Qwen/Qwen2.5-7B-Instruct"
	DefaultBaseURL     = "https://router.huggingface.co/v1"
	DefaultTokenEnv    = "HUGGINGFACEHUB_API_TOKEN"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
	DefaultTimeout     = 120

	DefaultAnnualReturn  = 12.0
	DefaultRiskProfile   = "medium"
	DefaultSummaryLength = 100

	DefaultServerPort = 3000

	DefaultArchiveDir       = "archive"
	DefaultArchiveContainer = "vitta-transcripts"
	DefaultArchiveWorkers   = 4
)

// PathsConfig holds directory paths for transcripts and session logs.
type PathsConfig struct {
	Logs     string `yaml:"logs,omitempty"`
	Sessions string `yaml:"sessions,omitempty"`
}

// GeneratorConfig selects the text-generation backend. The API token is
// never stored in the file; TokenEnv names the environment variable that
// holds it.
type GeneratorConfig struct {
	Engine      string         `yaml:"engine,omitempty"`
	Model       string         `yaml:"model,omitempty"`
	BaseURL     string         `yaml:"base_url,omitempty"`
	TokenEnv    string         `yaml:"token_env,omitempty"`
	Temperature *float64       `yaml:"temperature,omitempty"`
	MaxTokens   int            `yaml:"max_tokens,omitempty"`
	Timeout     int            `yaml:"timeout,omitempty"`
	Options     map[string]any `yaml:"options,omitempty"`
}

// DefaultsConfig holds defaults for the goal form and transcripts.
type DefaultsConfig struct {
	AnnualReturn  float64 `yaml:"annual_return,omitempty"`
	RiskProfile   string  `yaml:"risk_profile,omitempty"`
	SummaryLength int     `yaml:"summary_length,omitempty"`
	SessionLog    *bool   `yaml:"session_log,omitempty"`
}

// ServerConfig holds transcript browser settings.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

// ArchiveConfig holds settings for vitta archive. AccountURL selects the
// Azure Blob sink; without it archives go to Dir.
type ArchiveConfig struct {
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
	Dir        string `yaml:"dir,omitempty"`
	Workers    int    `yaml:"workers,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .vitta.yaml.
type ProjectConfig struct {
	Paths     PathsConfig     `yaml:"paths,omitempty"`
	Generator GeneratorConfig `yaml:"generator,omitempty"`
	Defaults  DefaultsConfig  `yaml:"defaults,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Archive   ArchiveConfig   `yaml:"archive,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Logs:     DefaultLogsDir,
			Sessions: DefaultSessionsDir,
		},
		Generator: GeneratorConfig{
			Engine:      DefaultEngine,
			Model:       DefaultModel,
			BaseURL:     DefaultBaseURL,
			TokenEnv:    DefaultTokenEnv,
			Temperature: floatPtr(DefaultTemperature),
			MaxTokens:   DefaultMaxTokens,
			Timeout:     DefaultTimeout,
		},
		Defaults: DefaultsConfig{
			AnnualReturn:  DefaultAnnualReturn,
			RiskProfile:   DefaultRiskProfile,
			SummaryLength: DefaultSummaryLength,
			SessionLog:    boolPtr(false),
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Archive: ArchiveConfig{
			Container: DefaultArchiveContainer,
			Dir:       DefaultArchiveDir,
			Workers:   DefaultArchiveWorkers,
		},
	}
}

// Load finds .vitta.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// APIToken reads the generator token from the configured environment variable.
func (c *ProjectConfig) APIToken() string {
	if c.Generator.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.Generator.TokenEnv)
}

// GeneratorTimeout returns the per-call generation timeout.
func (c *ProjectConfig) GeneratorTimeout() time.Duration {
	return time.Duration(c.Generator.Timeout) * time.Second
}

// SessionLogEnabled reports whether pipeline runs write a session log.
func (c *ProjectConfig) SessionLogEnabled() bool {
	return c.Defaults.SessionLog != nil && *c.Defaults.SessionLog
}

// findConfigFile walks up from dir looking for .vitta.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Logs != "" {
		dst.Paths.Logs = src.Paths.Logs
	}
	if src.Paths.Sessions != "" {
		dst.Paths.Sessions = src.Paths.Sessions
	}

	// Generator
	if src.Generator.Engine != "" {
		dst.Generator.Engine = src.Generator.Engine
	}
	if src.Generator.Model != "" {
		dst.Generator.Model = src.Generator.Model
	}
	if src.Generator.BaseURL != "" {
		dst.Generator.BaseURL = src.Generator.BaseURL
	}
	if src.Generator.TokenEnv != "" {
		dst.Generator.TokenEnv = src.Generator.TokenEnv
	}
	if src.Generator.Temperature != nil {
		dst.Generator.Temperature = src.Generator.Temperature
	}
	if src.Generator.MaxTokens != 0 {
		dst.Generator.MaxTokens = src.Generator.MaxTokens
	}
	if src.Generator.Timeout != 0 {
		dst.Generator.Timeout = src.Generator.Timeout
	}
	if src.Generator.Options != nil {
		dst.Generator.Options = src.Generator.Options
	}

	// Defaults
	if src.Defaults.AnnualReturn != 0 {
		dst.Defaults.AnnualReturn = src.Defaults.AnnualReturn
	}
	if src.Defaults.RiskProfile != "" {
		dst.Defaults.RiskProfile = src.Defaults.RiskProfile
	}
	if src.Defaults.SummaryLength != 0 {
		dst.Defaults.SummaryLength = src.Defaults.SummaryLength
	}
	if src.Defaults.SessionLog != nil {
		dst.Defaults.SessionLog = src.Defaults.SessionLog
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}

	// Archive
	if src.Archive.AccountURL != "" {
		dst.Archive.AccountURL = src.Archive.AccountURL
	}
	if src.Archive.Container != "" {
		dst.Archive.Container = src.Archive.Container
	}
	if src.Archive.Dir != "" {
		dst.Archive.Dir = src.Archive.Dir
	}
	if src.Archive.Workers != 0 {
		dst.Archive.Workers = src.Archive.Workers
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}
