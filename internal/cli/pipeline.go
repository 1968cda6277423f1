package cli

import (
	"context"
	"strings"
	"time"

	"github.com/loggrid/loggrid/internal/config"
	"github.com/loggrid/loggrid/internal/filter"
	"github.com/loggrid/loggrid/internal/logger"
	"github.com/loggrid/loggrid/internal/metrics"
	"github.com/loggrid/loggrid/internal/palette"
	"github.com/loggrid/loggrid/internal/parse"
	"github.com/loggrid/loggrid/internal/record"
	"github.com/loggrid/loggrid/internal/store"
	"github.com/loggrid/loggrid/internal/view"
)

// pipeline wires one store, coordinator and view together for a command
// invocation.
type pipeline struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store
	pal   *palette.Palette
	view  *view.View
	coord *parse.Coordinator
	track *metrics.Tracker
}

// newPipeline builds the pipeline against the configured collaborator:
// the external script when one is configured, otherwise the in-process
// best-effort fallback.
func newPipeline() *pipeline {
	cfg := getGlobalConfig()
	log := logger.NewWithCallback("cli", isVerbose)

	st := store.New()
	pal := palette.New()
	v := view.New(st, pal, log.WithComponent("view"))

	var collab parse.Collaborator
	if cfg.Parser.ScriptPath != "" {
		collab = parse.NewScriptCollaborator(cfg.Parser.Interpreter, cfg.Parser.ScriptPath, log.WithComponent("collaborator"))
	} else {
		collab = parse.LocalCollaborator{}
	}
	coord := parse.NewCoordinator(collab, st, log.WithComponent("coordinator"), cfg.Parser.CustomPatternsPath)

	return &pipeline{
		cfg:   cfg,
		log:   log,
		store: st,
		pal:   pal,
		view:  v,
		coord: coord,
		track: metrics.NewTracker(),
	}
}

// parseTracked runs ParseFile under the parse timer and records throughput.
func (p *pipeline) parseTracked(ctx context.Context, filename string, bestEffort bool) error {
	err := p.track.Track(metrics.OperationParse, func() error {
		return p.coord.ParseFile(ctx, filename, bestEffort)
	})
	if err == nil {
		p.track.RecordsLoaded(p.store.Len())
	}
	return err
}

// logTimings emits the per-operation timing summary at verbose level.
func (p *pipeline) logTimings() {
	for _, s := range p.track.Snapshot() {
		p.log.Debug("%s: %d run(s), last %s, total %s", s.Operation, s.Count, s.Last, s.Total)
	}
}

// commandContext returns a context bounded by the configured collaborator
// timeout.
func (p *pipeline) commandContext() (context.Context, context.CancelFunc) {
	if p.cfg.Parser.Timeout > 0 {
		return context.WithTimeout(context.Background(), p.cfg.Parser.Timeout)
	}
	return context.WithCancel(context.Background())
}

// installPattern installs the user-supplied pattern when given, otherwise
// asks the coordinator for a suggestion. It reports whether the active
// pattern was suggested (and parses therefore default to best-effort).
func (p *pipeline) installPattern(ctx context.Context, filePath, spec, fieldList string) bool {
	if spec == "" {
		_ = p.track.Track(metrics.OperationSuggest, func() error {
			p.coord.SuggestPattern(ctx, filePath)
			return nil
		})
		return true
	}

	def := &record.PatternDefinition{
		Spec:        spec,
		Description: "User-supplied pattern",
		FieldNames:  splitFieldList(fieldList),
	}
	if len(def.FieldNames) == 0 {
		def.FieldNames = record.DefaultPattern().FieldNames
	}
	p.coord.SetPattern(def)
	return false
}

// buildCriteria assembles the grid filter criteria from command flags.
func buildCriteria(fromDate, toDate, fromTime, toTime, timestampField, search string, invert bool) (filter.Criteria, error) {
	c := filter.Criteria{
		StartTimeText:  fromTime,
		EndTimeText:    toTime,
		TimestampField: timestampField,
		Search:         search,
		Invert:         invert,
	}

	if fromDate != "" {
		d, err := time.Parse("2006-01-02", fromDate)
		if err != nil {
			return c, err
		}
		c.StartDate = &d
	}
	if toDate != "" {
		d, err := time.Parse("2006-01-02", toDate)
		if err != nil {
			return c, err
		}
		c.EndDate = &d
	}
	return c, nil
}

func splitFieldList(fieldList string) []string {
	if strings.TrimSpace(fieldList) == "" {
		return nil
	}
	parts := strings.Split(fieldList, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			fields = append(fields, name)
		}
	}
	return fields
}
