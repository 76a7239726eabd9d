// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Output formats for score reports.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Scoring
	Rubric     string `json:"rubric,omitempty"`      // Built-in rubric name
	RubricFile string `json:"rubric_file,omitempty"` // Path to a custom YAML rubric
	MinScore   int    `json:"min_score,omitempty"`   // Fail when any record scores below this

	// Output
	Format      string `json:"format,omitempty"`      // text or json
	Concurrency int    `json:"concurrency,omitempty"` // Files scored in parallel

	// Server
	Port int `json:"port,omitempty"`

	// Logging
	LogJSON bool `json:"log_json,omitempty"`
	Debug   bool `json:"debug,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Rubric:      "standard",
		Format:      FormatText,
		Concurrency: 4,
		Port:        8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Rubric != "" && c.RubricFile != "" {
		return fmt.Errorf("config error: 'rubric' and 'rubric_file' are mutually exclusive")
	}

	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("config error: 'min_score' must be between 0 and 100")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("config error: unknown format %q", c.Format)
	}

	if c.RubricFile != "" {
		if _, err := os.Stat(c.RubricFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: rubric file not found: %s", c.RubricFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// A rubric file suppresses the default rubric name.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Rubric == "" && result.RubricFile == "" {
		result.Rubric = defaults.Rubric
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}

	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
