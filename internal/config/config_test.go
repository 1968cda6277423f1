package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Parser.Interpreter != "python3" {
		t.Errorf("default interpreter = %q", cfg.Parser.Interpreter)
	}
	if cfg.Parser.ScriptPath != "" {
		t.Errorf("default script path = %q, want empty (local fallback)", cfg.Parser.ScriptPath)
	}
	if cfg.Parser.Timeout != 60*time.Second {
		t.Errorf("default timeout = %v", cfg.Parser.Timeout)
	}
	if cfg.Filter.TimestampField != "Timestamp" {
		t.Errorf("default timestamp field = %q", cfg.Filter.TimestampField)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"json format", func(c *Config) { c.Output.DefaultFormat = "json" }, false},
		{"unknown format", func(c *Config) { c.Output.DefaultFormat = "xml" }, true},
		{"unknown color mode", func(c *Config) { c.Output.ColorMode = "sometimes" }, true},
		{"negative timeout", func(c *Config) { c.Parser.Timeout = -time.Second }, true},
		{"negative max rows", func(c *Config) { c.Output.MaxRows = -1 }, true},
		{"zero timeout ok", func(c *Config) { c.Parser.Timeout = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
version: "1.0"
parser:
  interpreter: python3
  script_path: /opt/loggrid/log_parser.py
  timeout: 30s
filter:
  timestamp_field: EventTime
output:
  default_format: json
  max_rows: 50
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Parser.ScriptPath != "/opt/loggrid/log_parser.py" {
		t.Errorf("script path = %q", cfg.Parser.ScriptPath)
	}
	if cfg.Parser.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.Parser.Timeout)
	}
	if cfg.Filter.TimestampField != "EventTime" {
		t.Errorf("timestamp field = %q", cfg.Filter.TimestampField)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("format = %q", cfg.Output.DefaultFormat)
	}
	if cfg.Output.MaxRows != 50 {
		t.Errorf("max rows = %d", cfg.Output.MaxRows)
	}
	// Unset keys keep their defaults.
	if cfg.Output.ColorMode != "auto" {
		t.Errorf("color mode = %q, want default", cfg.Output.ColorMode)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := NewLoader().LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
output:
  default_format: xml
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := NewLoader().LoadConfig(path); err == nil {
		t.Error("expected validation error for unknown format")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOGGRID_PARSER_SCRIPT", "/tmp/parser.py")
	t.Setenv("LOGGRID_PARSER_TIMEOUT", "90s")
	t.Setenv("LOGGRID_TIMESTAMP_FIELD", "When")
	t.Setenv("LOGGRID_VERBOSE", "true")

	loader := &Loader{configPaths: nil} // skip search paths, defaults + env only
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Parser.ScriptPath != "/tmp/parser.py" {
		t.Errorf("script path = %q", cfg.Parser.ScriptPath)
	}
	if cfg.Parser.Timeout != 90*time.Second {
		t.Errorf("timeout = %v", cfg.Parser.Timeout)
	}
	if cfg.Filter.TimestampField != "When" {
		t.Errorf("timestamp field = %q", cfg.Filter.TimestampField)
	}
	if !cfg.Output.Verbose {
		t.Error("verbose override not applied")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/x.yaml"); got != "/abs/x.yaml" {
		t.Errorf("expandHome left absolute path alone? got %q", got)
	}
}
