package parse

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/loggrid/loggrid/internal/record"
	"github.com/yildizm/go-logparser"
)

// timestampFormat is how local-parse timestamps are rendered back into
// record field values. Keep it in the generic layout list of the filter
// engine so range filtering keeps working on locally parsed records.
const timestampFormat = "2006-01-02 15:04:05"

// LocalCollaborator is the in-process best-effort fallback used when no
// external parsing script is configured, and for live pattern previews.
// It auto-detects the line format with go-logparser and maps every entry
// onto the default Timestamp/Level/Message schema. Pattern specs are not
// interpreted here; that is the external collaborator's job.
type LocalCollaborator struct{}

// Suggest implements Collaborator. The default triad is suggested whenever
// the file yields at least one parseable entry.
func (LocalCollaborator) Suggest(_ context.Context, filePath, _ string) (*record.PatternDefinition, error) {
	entries, err := parseLocally(filePath)
	if err != nil {
		return nil, &SuggestError{FilePath: filePath, Cause: err}
	}
	if len(entries) == 0 {
		return nil, &SuggestError{FilePath: filePath, Cause: fmt.Errorf("no parseable lines")}
	}
	def := record.DefaultPattern()
	def.Description = "Auto-detected format (local fallback)"
	return def, nil
}

// Parse implements Collaborator. The configured pattern spec is ignored;
// rows always carry the triad columns that were actually detected.
func (LocalCollaborator) Parse(_ context.Context, filePath string, _ *record.PatternDefinition, _ bool, _ string) ([]map[string]string, error) {
	entries, err := parseLocally(filePath)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		row := make(map[string]string, 3)
		if !entry.Timestamp.IsZero() {
			row["Timestamp"] = entry.Timestamp.Format(timestampFormat)
		}
		if entry.Level != "" {
			row["Level"] = entry.Level
		}
		if entry.Message != "" {
			row["Message"] = entry.Message
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseLocally(filePath string) ([]logparser.LogEntry, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- user-chosen log file
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	p := logparser.New()
	entries, err := p.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("detecting format: %w", err)
	}
	return entries, nil
}
