package formatter

import (
	"encoding/json"

	"github.com/loggrid/loggrid/internal/analyze"
	"github.com/loggrid/loggrid/internal/record"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &jsonOutput{
		Summary: &summaryOutput{
			TotalRecords:   report.TotalRecords,
			MatchedRecords: report.MatchedRecords,
		},
		Pattern: report.Pattern,
	}

	if report.GroupField != "" {
		output.Groups = &groupsOutput{
			Field:  report.GroupField,
			Groups: report.Groups,
		}
	}
	if report.BucketField != "" {
		output.Histogram = &histogramOutput{
			Field:       report.BucketField,
			Granularity: report.Granularity.String(),
			Bins:        report.Bins,
		}
	}

	return json.MarshalIndent(output, "", "  ")
}

type jsonOutput struct {
	Summary   *summaryOutput            `json:"summary"`
	Pattern   *record.PatternDefinition `json:"pattern,omitempty"`
	Groups    *groupsOutput             `json:"groups,omitempty"`
	Histogram *histogramOutput          `json:"histogram,omitempty"`
}

type summaryOutput struct {
	TotalRecords   int `json:"total_records"`
	MatchedRecords int `json:"matched_records"`
}

type groupsOutput struct {
	Field  string          `json:"field"`
	Groups []analyze.Group `json:"groups"`
}

type histogramOutput struct {
	Field       string        `json:"field"`
	Granularity string        `json:"granularity"`
	Bins        []analyze.Bin `json:"bins"`
}
