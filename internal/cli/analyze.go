package cli

import (
	"fmt"
	"os"

	"github.com/loggrid/loggrid/internal/analyze"
	"github.com/loggrid/loggrid/internal/formatter"
	"github.com/loggrid/loggrid/internal/metrics"
	"github.com/loggrid/loggrid/internal/view"
	"github.com/spf13/cobra"
)

var (
	analyzePattern     string
	analyzeFields      string
	analyzeBestEffort  bool
	analyzeGroup       string
	analyzeBucket      string
	analyzeGranularity string
	analyzeFromDate    string
	analyzeToDate      string
	analyzeFromTime    string
	analyzeToTime      string
	analyzeSearch      string
	analyzeInvert      bool
	analyzeTimeField   string
	analyzeMaxRows     int
	analyzeOutputFile  string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Parse a log file and filter, group and bucket its records",
		Long: `Parse a log file into dynamic records and compute filtered, grouped and
time-bucketed views over them.

Without --pattern, the parsing collaborator suggests one and the parse runs
best-effort (zero matches is acceptable). With --pattern, the parse is
strict: zero matches is reported as an error.

Examples:
  loggrid analyze app.log --group Level
  loggrid analyze app.log --bucket Timestamp --granularity hour
  loggrid analyze app.log --search "error timeout" --from 2024-01-01 --to 2024-01-10
  loggrid analyze app.log --pattern '^\[(.*?)\]\s*(\w+):\s*(.*)$' --fields Timestamp,Level,Message`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzePattern, "pattern", "p", "", "parser pattern spec (default: ask the collaborator for a suggestion)")
	cmd.Flags().StringVar(&analyzeFields, "fields", "", "comma-separated field names produced by --pattern")
	cmd.Flags().BoolVar(&analyzeBestEffort, "best-effort", false, "treat zero or partial matches as acceptable even with --pattern")
	cmd.Flags().StringVarP(&analyzeGroup, "group", "g", "", "field to compute grouped counts over")
	cmd.Flags().StringVarP(&analyzeBucket, "bucket", "b", "", "timestamp field to compute the histogram over")
	cmd.Flags().StringVar(&analyzeGranularity, "granularity", "day", "histogram bucket granularity (hour, day, week, month)")
	cmd.Flags().StringVar(&analyzeFromDate, "from", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&analyzeToDate, "to", "", "range end date (YYYY-MM-DD, inclusive of the whole day)")
	cmd.Flags().StringVar(&analyzeFromTime, "from-time", "", "range start time of day (HH:MM[:SS])")
	cmd.Flags().StringVar(&analyzeToTime, "to-time", "", "range end time of day (HH:MM[:SS])")
	cmd.Flags().StringVarP(&analyzeSearch, "search", "s", "", "keyword filter; all words must match somewhere in a record")
	cmd.Flags().BoolVar(&analyzeInvert, "invert", false, "invert the keyword filter")
	cmd.Flags().StringVar(&analyzeTimeField, "timestamp-field", "", "field holding the record timestamp (default from config)")
	cmd.Flags().IntVar(&analyzeMaxRows, "max-rows", 0, "record rows to print (default from config)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filename := args[0]
	p := newPipeline()

	granularity, err := analyze.ParseGranularity(analyzeGranularity)
	if err != nil {
		return err
	}

	timeField := analyzeTimeField
	if timeField == "" {
		timeField = p.cfg.Filter.TimestampField
	}
	criteria, err := buildCriteria(analyzeFromDate, analyzeToDate, analyzeFromTime, analyzeToTime,
		timeField, analyzeSearch, analyzeInvert)
	if err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}

	ctx, cancel := p.commandContext()
	defer cancel()

	suggested := p.installPattern(ctx, filename, analyzePattern, analyzeFields)
	bestEffort := suggested
	if cmd.Flag("best-effort").Changed {
		bestEffort = analyzeBestEffort
	}

	if err := p.parseTracked(ctx, filename, bestEffort); err != nil {
		return err
	}

	p.view.SetCriteria(criteria)
	p.view.SetGrouping(analyzeGroup)
	p.view.SetBucketing(analyzeBucket, granularity)

	var snap *view.Snapshot
	err = p.track.Track(metrics.OperationRefresh, func() error {
		var refreshErr error
		snap, refreshErr = p.view.Refresh(ctx)
		return refreshErr
	})
	if err != nil {
		return err
	}
	defer p.logTimings()

	maxRows := analyzeMaxRows
	if maxRows == 0 {
		maxRows = p.cfg.Output.MaxRows
	}
	report := &formatter.Report{
		Pattern:        p.view.ActivePattern(),
		TotalRecords:   snap.Total,
		MatchedRecords: len(snap.Records),
		GroupField:     analyzeGroup,
		Groups:         snap.Groups,
		BucketField:    analyzeBucket,
		Granularity:    granularity,
		Bins:           snap.Bins,
		Records:        snap.Records,
		MaxRows:        maxRows,
	}

	return p.track.Track(metrics.OperationFormat, func() error {
		return writeReport(report)
	})
}

// writeReport renders the report with the selected formatter and writes it
// to stdout or the requested output file.
func writeReport(report *formatter.Report) error {
	f, err := formatter.New(getOutputFormat(), colorEnabled())
	if err != nil {
		return err
	}
	out, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := os.WriteFile(analyzeOutputFile, out, 0o600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(out)
	return err
}
