package record

// PatternDefinition describes the active schema: the parser specification
// handed to the parsing collaborator, a human-readable description, and the
// ordered field names the pattern produces. One definition is active at a
// time; it is replaced wholesale when the user suggests or edits a pattern.
type PatternDefinition struct {
	Spec        string   `yaml:"spec" json:"spec"`
	Description string   `yaml:"description" json:"description"`
	FieldNames  []string `yaml:"field_names" json:"fieldNames"`
}

// Clone returns a deep copy so the coordinator can amend field names
// without mutating the previously active definition.
func (p *PatternDefinition) Clone() *PatternDefinition {
	clone := &PatternDefinition{
		Spec:        p.Spec,
		Description: p.Description,
		FieldNames:  make([]string, len(p.FieldNames)),
	}
	copy(clone.FieldNames, p.FieldNames)
	return clone
}

// FieldCount returns the number of fields the pattern produces.
func (p *PatternDefinition) FieldCount() int {
	return len(p.FieldNames)
}

// DefaultPattern returns the built-in bracketed-timestamp pattern used when
// suggestion fails or no pattern has been chosen yet.
//
// Matches lines such as: [2025-10-23 09:00:00] INFO: Application started.
func DefaultPattern() *PatternDefinition {
	return &PatternDefinition{
		Spec:        `^\[(.*?)\]\s*(INFO|WARN|ERROR):\s*(.*)$`,
		Description: "Bracketed timestamp with level and message",
		FieldNames:  []string{"Timestamp", "Level", "Message"},
	}
}
