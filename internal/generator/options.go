package generator

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// OpenAIOptions are the engine options understood by the openai engine.
type OpenAIOptions struct {
	Organization string  `mapstructure:"organization"`
	TopP         float32 `mapstructure:"top_p"`
	Seed         *int    `mapstructure:"seed"`
}

// CopilotOptions are the engine options understood by the copilot engine.
type CopilotOptions struct {
	LogLevel string `mapstructure:"log_level"`
	CLIPath  string `mapstructure:"cli_path"`
}

// decodeOptions decodes an engine's raw options map into v, rejecting keys
// the engine does not know about.
func decodeOptions(engine string, raw map[string]any, v any) error {
	if len(raw) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      v,
	})
	if err != nil {
		return fmt.Errorf("creating %s options decoder: %w", engine, err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid %s options: %w", engine, err)
	}
	return nil
}
