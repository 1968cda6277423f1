package parse

import (
	"context"
	"sort"
	"sync"

	"github.com/loggrid/loggrid/internal/logger"
	"github.com/loggrid/loggrid/internal/record"
	"github.com/loggrid/loggrid/internal/store"
)

// State tracks what the coordinator is currently doing.
type State int

const (
	StateIdle State = iota
	StateSuggesting
	StateParsing
)

func (s State) String() string {
	switch s {
	case StateSuggesting:
		return "suggesting"
	case StateParsing:
		return "parsing"
	default:
		return "idle"
	}
}

// Coordinator orchestrates the collaborator round trips and reconciles
// their results into the record store. One coordinator drives one store.
type Coordinator struct {
	mu                 sync.Mutex
	state              State
	collab             Collaborator
	store              *store.Store
	log                *logger.Logger
	customPatternsPath string
}

// NewCoordinator creates a coordinator over the given collaborator and
// store. customPatternsPath is forwarded on every collaborator request and
// may be empty.
func NewCoordinator(collab Collaborator, st *store.Store, log *logger.Logger, customPatternsPath string) *Coordinator {
	return &Coordinator{
		collab:             collab,
		store:              st,
		log:                log,
		customPatternsPath: customPatternsPath,
	}
}

// State returns the coordinator's current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// SuggestPattern asks the collaborator for a best-guess pattern for the
// file and installs it as the active definition. It never fails: when the
// collaborator cannot help, the built-in default pattern is installed
// instead, so a pattern is always active afterwards.
func (c *Coordinator) SuggestPattern(ctx context.Context, filePath string) *record.PatternDefinition {
	c.setState(StateSuggesting)
	defer c.setState(StateIdle)

	def, err := c.collab.Suggest(ctx, filePath, c.customPatternsPath)
	if err != nil {
		c.log.Warn("pattern suggestion failed, falling back to default: %v", err)
		def = record.DefaultPattern()
	} else {
		c.log.Info("suggested pattern with %d fields", len(def.FieldNames))
	}
	c.store.SetPattern(def)
	return def
}

// SetPattern installs a user-crafted pattern as the active definition.
func (c *Coordinator) SetPattern(def *record.PatternDefinition) {
	c.store.SetPattern(def)
}

// ParseFile parses the file with the active pattern and loads the result
// into the store.
//
// With bestEffort set, failures and zero matches are acceptable terminal
// outcomes: the store is reset empty, the condition is logged, and no error
// is returned. Without it, any failure or zero matches is reported as a
// strict parse error; the store is still reset rather than left partially
// populated.
func (c *Coordinator) ParseFile(ctx context.Context, filePath string, bestEffort bool) error {
	c.setState(StateParsing)
	defer c.setState(StateIdle)

	pattern := c.store.Pattern()
	if pattern == nil {
		pattern = record.DefaultPattern()
	}

	rows, err := c.collab.Parse(ctx, filePath, pattern, bestEffort, c.customPatternsPath)
	if err != nil {
		c.store.Load(nil, pattern)
		if bestEffort {
			c.log.Warn("best-effort parse of %s failed: %v", filePath, err)
			return nil
		}
		return &ParseError{FilePath: filePath, Strict: true, Message: "collaborator reported failure", Cause: err}
	}
	if len(rows) == 0 {
		c.store.Load(nil, pattern)
		if bestEffort {
			c.log.Info("parse of %s matched no lines", filePath)
			return nil
		}
		return &ParseError{FilePath: filePath, Strict: true, Message: "pattern matched no lines"}
	}

	records, fieldNames := buildRecords(rows, pattern.FieldNames)

	// Columns the collaborator discovered beyond the declared schema
	// become canonical on the active pattern before records are handed
	// to the store.
	active := pattern.Clone()
	active.FieldNames = fieldNames

	c.store.Load(records, active)
	c.log.InfoWithFields("loaded records", []logger.Field{
		logger.Count(len(records)),
		logger.F("fields", len(fieldNames)),
	})
	return nil
}

// buildRecords converts collaborator rows into records sharing one field
// order. Declared field names come first; extra columns are appended in
// sorted first-seen order so repeated parses produce the same schema.
func buildRecords(rows []map[string]string, declared []string) ([]*record.Record, []string) {
	fieldNames := make([]string, len(declared))
	copy(fieldNames, declared)

	known := make(map[string]bool, len(declared))
	for _, name := range declared {
		known[name] = true
	}
	for _, row := range rows {
		var extras []string
		for name := range row {
			if !known[name] {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		for _, name := range extras {
			known[name] = true
			fieldNames = append(fieldNames, name)
		}
	}

	records := make([]*record.Record, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]string, len(row))
		for name, value := range row {
			fields[name] = value
		}
		records = append(records, record.New(fieldNames, fields))
	}
	return records, fieldNames
}
