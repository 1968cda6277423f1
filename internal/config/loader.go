package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.loggrid.yaml",               // Project-specific config (highest priority)
	"~/.config/loggrid/config.yaml", // User config
	"/etc/loggrid/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration in priority order: environment variables
// over an explicit file over the search paths over built-in defaults.
// Command-line flags are applied by the caller on top.
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	cfg := DefaultConfig()

	if customPath != "" {
		if err := l.loadFromFile(cfg, customPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files override earlier ones.
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := expandHome(l.configPaths[i])
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := l.loadFromFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading config from %s: %w", path, err)
			}
		}
	}

	applyEnvironmentOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- config path comes from the user
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}

// applyEnvironmentOverrides applies LOGGRID_* environment variables.
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("LOGGRID_PARSER_SCRIPT"); v != "" {
		cfg.Parser.ScriptPath = v
	}
	if v := os.Getenv("LOGGRID_PARSER_INTERPRETER"); v != "" {
		cfg.Parser.Interpreter = v
	}
	if v := os.Getenv("LOGGRID_CUSTOM_PATTERNS"); v != "" {
		cfg.Parser.CustomPatternsPath = v
	}
	if v := os.Getenv("LOGGRID_PARSER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Parser.Timeout = d
		}
	}
	if v := os.Getenv("LOGGRID_TIMESTAMP_FIELD"); v != "" {
		cfg.Filter.TimestampField = v
	}
	if v := os.Getenv("LOGGRID_OUTPUT_FORMAT"); v != "" {
		cfg.Output.DefaultFormat = v
	}
	if v := os.Getenv("LOGGRID_VERBOSE"); v != "" {
		cfg.Output.Verbose = strings.EqualFold(v, "true") || v == "1"
	}
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
