package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/loggrid/loggrid/internal/palette"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter renders a report as plain text for terminal display
// using go-termfmt trees plus lipgloss color swatches.
type terminalFormatter struct {
	opts  *termfmt.TerminalOptions
	color bool
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = false
	return &terminalFormatter{opts: opts, color: color}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeSummary(&b, report)
	if len(report.Groups) > 0 {
		f.writeGroups(&b, report)
	}
	if len(report.Bins) > 0 {
		f.writeHistogram(&b, report)
	}
	if len(report.Records) > 0 {
		f.writeRecords(&b, report)
	}

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, report *Report) {
	b.WriteString("Summary\n")

	items := []termfmt.TreeItem{
		{Label: "Total Records", Value: fmt.Sprintf("%d", report.TotalRecords)},
		{Label: "Matched", Value: fmt.Sprintf("%d", report.MatchedRecords)},
	}
	if report.Pattern != nil {
		items = append(items, termfmt.TreeItem{
			Label: "Fields",
			Value: strings.Join(report.Pattern.FieldNames, ", "),
		})
		items = append(items, termfmt.TreeItem{
			Label: "Pattern",
			Value: report.Pattern.Description,
			Last:  true,
		})
	} else {
		items[len(items)-1].Last = true
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeGroups(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "Groups by %s\n", report.GroupField)

	total := 0
	for _, g := range report.Groups {
		total += g.Count
	}

	for i, g := range report.Groups {
		branch := "├─"
		if i == len(report.Groups)-1 {
			branch = "└─"
		}
		share := 0.0
		if total > 0 {
			share = float64(g.Count) / float64(total) * 100
		}
		fmt.Fprintf(b, "%s %s %s (%d, %.1f%%)\n", branch, f.swatch(g.Color), g.Key, g.Count, share)
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeHistogram(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "Histogram by %s (%s)\n", report.BucketField, report.Granularity)

	max := 0
	for _, bin := range report.Bins {
		if bin.Count > max {
			max = bin.Count
		}
	}

	barStyle := lipgloss.NewStyle()
	if f.color {
		barStyle = barStyle.Foreground(palette.HistogramColor)
	}

	const barWidth = 40
	for _, bin := range report.Bins {
		width := 0
		if max > 0 {
			width = bin.Count * barWidth / max
		}
		if width == 0 && bin.Count > 0 {
			width = 1
		}
		fmt.Fprintf(b, "%-13s %s %d\n", bin.Label, barStyle.Render(strings.Repeat("█", width)), bin.Count)
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeRecords(b *strings.Builder, report *Report) {
	limit := report.MaxRows
	if limit <= 0 || limit > len(report.Records) {
		limit = len(report.Records)
	}

	fmt.Fprintf(b, "Records (showing %d of %d)\n", limit, len(report.Records))
	for _, r := range report.Records[:limit] {
		values := make([]string, 0, len(r.FieldOrder))
		for _, name := range r.FieldOrder {
			if v, ok := r.Value(name); ok {
				values = append(values, v)
			}
		}
		fmt.Fprintf(b, "  %s\n", strings.Join(values, " | "))
	}
	if limit < len(report.Records) {
		fmt.Fprintf(b, "  … %d more\n", len(report.Records)-limit)
	}
	b.WriteString("\n")
}

// swatch renders a colored legend marker for a group.
func (f *terminalFormatter) swatch(color lipgloss.Color) string {
	if !f.color {
		return "■"
	}
	return lipgloss.NewStyle().Foreground(color).Render("■")
}
