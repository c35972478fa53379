package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/furrowlabs/furrow/core"
	"github.com/furrowlabs/furrow/model"
)

// ModelConfig selects and parameterizes the language model backend.
type ModelConfig struct {
	// Provider is "openai", "anthropic" or "mock".
	Provider string `yaml:"provider"`
	// Name is the provider-specific model identifier.
	Name string `yaml:"name,omitempty"`

	Seed             *int     `yaml:"seed,omitempty"`
	Temperature      *float64 `yaml:"temperature,omitempty"`
	MaxTokens        *int     `yaml:"max_tokens,omitempty"`
	TopP             *float64 `yaml:"top_p,omitempty"`
	TopK             *int     `yaml:"top_k,omitempty"`
	Stop             []string `yaml:"stop,omitempty"`
	PresencePenalty  *float64 `yaml:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `yaml:"frequency_penalty,omitempty"`
}

// GenerationConfig converts the YAML sampling fields into the model package's
// request shape.
func (m ModelConfig) GenerationConfig() model.GenerationConfig {
	return model.GenerationConfig{
		Seed:             m.Seed,
		Temperature:      m.Temperature,
		MaxTokens:        m.MaxTokens,
		TopP:             m.TopP,
		TopK:             m.TopK,
		Stop:             m.Stop,
		PresencePenalty:  m.PresencePenalty,
		FrequencyPenalty: m.FrequencyPenalty,
	}
}

// PlannerConfig tunes the planning agents.
type PlannerConfig struct {
	// TerminationToken overrides the sentinel ending plan negotiation.
	TerminationToken string `yaml:"termination_token,omitempty"`
}

// DatabaseConfig points at the SQLite file whose schema feeds the
// decomposer prompt.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Config is the root configuration document.
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Planner  PlannerConfig  `yaml:"planner,omitempty"`
	Database DatabaseConfig `yaml:"database,omitempty"`
}

// Default returns a baseline configuration: mock backend, default sentinel.
func Default() *Config {
	return &Config{
		Model:   ModelConfig{Provider: "mock"},
		Planner: PlannerConfig{TerminationToken: core.TerminationToken},
	}
}

// Parse decodes a YAML document into a Config layered over defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the provider selection and fills empty fields with
// defaults.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic", "mock":
	case "":
		c.Model.Provider = "mock"
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if c.Planner.TerminationToken == "" {
		c.Planner.TerminationToken = core.TerminationToken
	}
	return nil
}
