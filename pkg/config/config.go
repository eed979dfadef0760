package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-kv/pkg/logging"
)

// Environment variables consulted by Load
const (
	EnvConfigPath = "KVSTORE_CONFIG"
	EnvPrompt     = "KVSTORE_PROMPT"
	EnvLogLevel   = logging.EnvLogLevel
)

// DefaultPrompt is printed before every command line
const DefaultPrompt = "> "

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// validate is a singleton validator instance
var validate = validator.New()

// Config holds the session configuration.
type Config struct {
	// Prompt printed before each line is read. May be empty.
	Prompt string `yaml:"prompt" validate:"max=32"`

	// LogLevel is one of debug, info, warn, error (any case)
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`

	// MetricsSummary prints per-command counters to stderr when the session ends
	MetricsSummary bool `yaml:"metrics_summary"`

	TUI TUIConfig `yaml:"tui"`
}

// TUIConfig configures the full-screen terminal front-end.
type TUIConfig struct {
	// HistoryLimit caps the number of scrollback lines kept
	HistoryLimit int `yaml:"history_limit" validate:"min=10,max=100000"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prompt:   DefaultPrompt,
		LogLevel: "warn",
		TUI: TUIConfig{
			HistoryLimit: 500,
		},
	}
}

// Load reads configuration from a YAML file, applies environment overrides
// and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if prompt, ok := os.LookupEnv(EnvPrompt); ok {
		c.Prompt = prompt
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Report the first failing field
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "min":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalidConfig, field, e.Param())
		case "max":
			return fmt.Errorf("%w: %s must not exceed %s", ErrInvalidConfig, field, e.Param())
		case "oneof":
			return fmt.Errorf("%w: %s must be one of [%s], got %q", ErrInvalidConfig, field, e.Param(), e.Value())
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalidConfig, field, e.Tag())
		}
	}

	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}
