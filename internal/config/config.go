package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Parser  ParserConfig `yaml:"parser" json:"parser"`
	Filter  FilterConfig `yaml:"filter" json:"filter"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

// ParserConfig configures the parsing collaborator
type ParserConfig struct {
	Interpreter        string        `yaml:"interpreter" json:"interpreter"`                   // interpreter for the parsing script
	ScriptPath         string        `yaml:"script_path" json:"script_path"`                   // external parsing script; empty = local fallback
	CustomPatternsPath string        `yaml:"custom_patterns_path" json:"custom_patterns_path"` // forwarded to the collaborator
	Timeout            time.Duration `yaml:"timeout" json:"timeout"`                           // per-invocation timeout
}

// FilterConfig configures default filter behavior
type FilterConfig struct {
	TimestampField string `yaml:"timestamp_field" json:"timestamp_field"` // default field for range filtering
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	MaxRows       int    `yaml:"max_rows" json:"max_rows"`             // record rows printed per report
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Parser: ParserConfig{
			Interpreter: "python3",
			Timeout:     60 * time.Second,
		},
		Filter: FilterConfig{
			TimestampField: "Timestamp",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			MaxRows:       20,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("output.default_format: unknown format %q (available: text, json, csv)", c.Output.DefaultFormat)
	}

	switch c.Output.ColorMode {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color_mode: unknown mode %q (available: auto, always, never)", c.Output.ColorMode)
	}

	if c.Parser.Timeout < 0 {
		return fmt.Errorf("parser.timeout: must not be negative")
	}
	if c.Output.MaxRows < 0 {
		return fmt.Errorf("output.max_rows: must not be negative")
	}
	return nil
}
