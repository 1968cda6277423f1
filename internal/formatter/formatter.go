package formatter

import (
	"fmt"

	"github.com/loggrid/loggrid/internal/analyze"
	"github.com/loggrid/loggrid/internal/record"
)

// Report is the displayable outcome of one query pass over the store.
type Report struct {
	Pattern        *record.PatternDefinition
	TotalRecords   int
	MatchedRecords int

	GroupField string
	Groups     []analyze.Group

	BucketField string
	Granularity analyze.Granularity
	Bins        []analyze.Bin

	Records []*record.Record
	MaxRows int
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// New creates a formatter for the named output format.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (available: text, json, csv)", format)
	}
}
