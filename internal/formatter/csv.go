package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// csvFormatter formats grouped counts or histogram bins as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	switch {
	case len(report.Groups) > 0:
		if err := writer.Write([]string{"value", "count", "color"}); err != nil {
			return nil, fmt.Errorf("writing CSV header: %w", err)
		}
		for _, g := range report.Groups {
			row := []string{g.Key, strconv.Itoa(g.Count), string(g.Color)}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("writing CSV row: %w", err)
			}
		}
	case len(report.Bins) > 0:
		if err := writer.Write([]string{"bucket", "count"}); err != nil {
			return nil, fmt.Errorf("writing CSV header: %w", err)
		}
		for _, bin := range report.Bins {
			row := []string{bin.Label, strconv.Itoa(bin.Count)}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("writing CSV row: %w", err)
			}
		}
	default:
		// Fall back to the record grid itself.
		if len(report.Records) > 0 {
			if err := writer.Write(report.Records[0].FieldOrder); err != nil {
				return nil, fmt.Errorf("writing CSV header: %w", err)
			}
			for _, r := range report.Records {
				row := make([]string, len(r.FieldOrder))
				for i, name := range r.FieldOrder {
					row[i], _ = r.Value(name)
				}
				if err := writer.Write(row); err != nil {
					return nil, fmt.Errorf("writing CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return b.Bytes(), nil
}
