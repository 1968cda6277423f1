package view

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/loggrid/loggrid/internal/analyze"
	"github.com/loggrid/loggrid/internal/filter"
	"github.com/loggrid/loggrid/internal/logger"
	"github.com/loggrid/loggrid/internal/palette"
	"github.com/loggrid/loggrid/internal/record"
	"github.com/loggrid/loggrid/internal/store"
)

// Snapshot is one consistent recomputation of everything the presentation
// layer displays: the filtered rows plus the grouped counts and time
// buckets derived from them.
type Snapshot struct {
	Records []*record.Record
	Groups  []analyze.Group
	Bins    []analyze.Bin
	Total   int
}

// View is the presentation-facing read interface over the store. It owns
// the persistent grid-scope filter criteria; charts that need their own
// range use the *Within variants with an explicit ad-hoc criteria instead.
type View struct {
	store *store.Store
	pal   *palette.Palette
	log   *logger.Logger

	mu          sync.RWMutex
	criteria    filter.Criteria
	groupField  string
	bucketField string
	granularity analyze.Granularity
}

// New creates a view over the store.
func New(st *store.Store, pal *palette.Palette, log *logger.Logger) *View {
	return &View{
		store:       st,
		pal:         pal,
		log:         log,
		granularity: analyze.GranularityDay,
	}
}

// SetCriteria replaces the persistent grid-scope criteria.
func (v *View) SetCriteria(c filter.Criteria) {
	v.mu.Lock()
	v.criteria = c
	v.mu.Unlock()
}

// Criteria returns a copy of the persistent grid-scope criteria.
func (v *View) Criteria() filter.Criteria {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.criteria
}

// SetSearch updates the keyword portion of the grid criteria.
func (v *View) SetSearch(search string, invert bool) {
	v.mu.Lock()
	v.criteria.Search = search
	v.criteria.Invert = invert
	v.mu.Unlock()
}

// SetTimestampField chooses which field range filtering reads.
func (v *View) SetTimestampField(field string) {
	v.mu.Lock()
	v.criteria.TimestampField = field
	v.mu.Unlock()
}

// SetGrouping chooses the field the grouped counts are computed over.
func (v *View) SetGrouping(field string) {
	v.mu.Lock()
	v.groupField = field
	v.mu.Unlock()
}

// SetBucketing chooses the histogram timestamp field and granularity.
func (v *View) SetBucketing(field string, g analyze.Granularity) {
	v.mu.Lock()
	v.bucketField = field
	v.granularity = g
	v.mu.Unlock()
}

// FilteredRecords returns the subset of the store matching the grid
// criteria.
func (v *View) FilteredRecords() []*record.Record {
	return filter.Apply(v.store.Snapshot(), v.Criteria())
}

// Aggregation computes grouped counts for the field over the grid-filtered
// subset.
func (v *View) Aggregation(field string) []analyze.Group {
	return analyze.Aggregate(field, v.FilteredRecords(), v.pal)
}

// TimeBuckets computes the histogram for the field over the grid-filtered
// subset.
func (v *View) TimeBuckets(field string, g analyze.Granularity) []analyze.Bin {
	return analyze.Histogram(field, g, v.FilteredRecords())
}

// AggregationWithin computes grouped counts under an ad-hoc criteria,
// leaving the grid criteria untouched.
func (v *View) AggregationWithin(field string, c filter.Criteria) []analyze.Group {
	return analyze.Aggregate(field, filter.Apply(v.store.Snapshot(), c), v.pal)
}

// TimeBucketsWithin computes the histogram under an ad-hoc criteria.
func (v *View) TimeBucketsWithin(field string, g analyze.Granularity, c filter.Criteria) []analyze.Bin {
	return analyze.Histogram(field, g, filter.Apply(v.store.Snapshot(), c))
}

// AvailableFields returns the ordered field names of the active schema.
func (v *View) AvailableFields() []string {
	return v.store.Fields()
}

// ActivePattern returns the active pattern definition.
func (v *View) ActivePattern() *record.PatternDefinition {
	return v.store.Pattern()
}

// Refresh recomputes the full snapshot. The grouped counts and the
// histogram run concurrently over the shared filtered subset; both are
// pure, so the only synchronization they need is inside the color cache.
func (v *View) Refresh(ctx context.Context) (*Snapshot, error) {
	records := v.store.Snapshot()

	v.mu.RLock()
	criteria := v.criteria
	groupField := v.groupField
	bucketField := v.bucketField
	granularity := v.granularity
	v.mu.RUnlock()

	rows := filter.Apply(records, criteria)
	snap := &Snapshot{Records: rows, Total: len(records)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap.Groups = analyze.Aggregate(groupField, rows, v.pal)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap.Bins = analyze.Histogram(bucketField, granularity, rows)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Watch recomputes a snapshot whenever the store resets and delivers it on
// the returned channel. Delivery is last-writer-wins: an unconsumed stale
// snapshot is discarded when a newer one arrives.
func (v *View) Watch(ctx context.Context) <-chan *Snapshot {
	events := v.store.Subscribe()
	out := make(chan *Snapshot, 1)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				snap, err := v.Refresh(ctx)
				if err != nil {
					v.log.Warn("snapshot refresh failed: %v", err)
					continue
				}
				select {
				case <-out:
				default:
				}
				select {
				case out <- snap:
				default:
				}
			}
		}
	}()
	return out
}
