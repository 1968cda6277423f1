package parse

import "encoding/json"

// Commands understood by the external parsing collaborator.
const (
	commandSuggest = "suggest_robust_pattern"
	commandParse   = "parse"
)

// SuggestRequest asks the collaborator for a best-guess pattern for a file.
type SuggestRequest struct {
	Command            string `json:"command"`
	FilePath           string `json:"filePath"`
	CustomPatternsPath string `json:"customPatternsPath,omitempty"`
}

// ParseRequest asks the collaborator to parse a file with a chosen pattern.
// BestEffort tells the collaborator that zero or partial matches are an
// acceptable outcome.
type ParseRequest struct {
	Command            string   `json:"command"`
	FilePath           string   `json:"filePath"`
	PatternSpec        string   `json:"patternSpec"`
	FieldNames         []string `json:"fieldNames"`
	BestEffort         bool     `json:"bestEffort"`
	CustomPatternsPath string   `json:"customPatternsPath,omitempty"`
}

// envelope is the collaborator's uniform response shape. Data is typed per
// command: a pattern definition for suggest, an array of field-name/value
// objects for parse.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}
