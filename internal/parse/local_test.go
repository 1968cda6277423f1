package parse

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeLogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing log file: %v", err)
	}
	return path
}

func TestLocalParseEmptyFile(t *testing.T) {
	path := writeLogFile(t, "\n\n")

	rows, err := LocalCollaborator{}.Parse(context.Background(), path, nil, true, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestLocalParseMissingFile(t *testing.T) {
	if _, err := (LocalCollaborator{}).Parse(context.Background(), "/nonexistent/app.log", nil, true, ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLocalSuggestEmptyFile(t *testing.T) {
	path := writeLogFile(t, "")

	if _, err := (LocalCollaborator{}).Suggest(context.Background(), path, ""); err == nil {
		t.Error("expected error for file with no parseable lines")
	}
}

func TestLocalParseJSONLines(t *testing.T) {
	path := writeLogFile(t, `{"time": "2024-01-10T09:00:00Z", "level": "error", "msg": "disk full"}
{"time": "2024-01-10T09:01:00Z", "level": "info", "msg": "started"}
`)

	rows, err := LocalCollaborator{}.Parse(context.Background(), path, nil, true, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		if row["Level"] == "" {
			t.Errorf("row %d has no level: %v", i, row)
		}
	}
}
