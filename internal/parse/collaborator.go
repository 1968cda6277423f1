package parse

import (
	"context"

	"github.com/loggrid/loggrid/internal/record"
)

// Collaborator is the boundary to the pattern-detection and parsing
// process. Implementations must honor the logical contract: suggest yields
// a pattern definition, parse yields rows of field-name/value pairs, and
// failure is reported through the returned error.
type Collaborator interface {
	// Suggest returns a best-guess pattern definition for the file.
	Suggest(ctx context.Context, filePath, customPatternsPath string) (*record.PatternDefinition, error)

	// Parse parses the file with the given pattern. Rows may contain
	// keys beyond the pattern's declared field names when the
	// collaborator discovers and auto-names extra columns.
	Parse(ctx context.Context, filePath string, pattern *record.PatternDefinition, bestEffort bool, customPatternsPath string) ([]map[string]string, error)
}
