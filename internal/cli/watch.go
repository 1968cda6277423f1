package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/loggrid/loggrid/internal/analyze"
	"github.com/loggrid/loggrid/internal/emoji"
	"github.com/spf13/cobra"
)

var (
	watchGroup       string
	watchBucket      string
	watchGranularity string
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-parse and re-aggregate a log file whenever it changes",
		Long: `Monitor a log file and recompute the grouped counts and histogram every
time the file is written. Press Ctrl+C to stop watching.

Examples:
  loggrid watch app.log --group Level
  loggrid watch access.log --bucket Timestamp --granularity hour`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchGroup, "group", "g", "Level", "field to compute grouped counts over")
	cmd.Flags().StringVarP(&watchBucket, "bucket", "b", "", "timestamp field to compute the histogram over")
	cmd.Flags().StringVar(&watchGranularity, "granularity", "hour", "histogram bucket granularity (hour, day, week, month)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	p := newPipeline()
	defer p.logTimings()

	granularity, err := analyze.ParseGranularity(watchGranularity)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p.coord.SuggestPattern(ctx, filename)
	p.view.SetGrouping(watchGroup)
	p.view.SetBucketing(watchBucket, granularity)

	snapshots := p.view.Watch(ctx)

	// Initial load before the first change event arrives.
	if err := p.parseTracked(ctx, filename, true); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer cleanupWatcher(watcher)

	// Watch the directory rather than the file itself: editors and log
	// rotation replace the file, which would silently detach a per-file
	// watch.
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		return fmt.Errorf("watching %s: %w", filename, err)
	}

	p.log.Info("watching %s", filename)
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			printWatchSummary(snap.Total, len(snap.Records), snap.Groups, snap.Bins)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(filename) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.parseTracked(ctx, filename, true); err != nil {
				p.log.Warn("re-parse failed: %v", err)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("watcher error: %v", watchErr)
		}
	}
}

func printWatchSummary(total, matched int, groups []analyze.Group, bins []analyze.Bin) {
	fmt.Printf("%s %d records (%d matched)\n", emoji.Marker("records"), total, matched)
	for _, g := range groups {
		fmt.Printf("  %s %-12s %d\n", emoji.Marker(g.Key), g.Key, g.Count)
	}
	for _, bin := range bins {
		fmt.Printf("  %-13s %d\n", bin.Label, bin.Count)
	}
}

// cleanupWatcher safely closes the watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}
