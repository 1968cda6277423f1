package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Operation names the tracked pipeline stages.
type Operation string

const (
	OperationSuggest Operation = "suggest"
	OperationParse   Operation = "parse"
	OperationRefresh Operation = "refresh"
	OperationFormat  Operation = "format"
)

// Timer accumulates durations for one operation.
type Timer struct {
	mu    sync.Mutex
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
	last  time.Duration
}

// Record adds one observed duration.
func (t *Timer) Record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count == 0 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.count++
	t.total += d
	t.last = d
}

// Count returns the number of recorded durations.
func (t *Timer) Count() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Average returns the mean recorded duration, zero when nothing was recorded.
func (t *Timer) Average() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return 0
	}
	return t.total / time.Duration(t.count)
}

func (t *Timer) snapshot() (count int64, total, min, max, last time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count, t.total, t.min, t.max, t.last
}

// OperationStats is one operation's accumulated timing summary.
type OperationStats struct {
	Operation Operation     `json:"operation"`
	Count     int64         `json:"count"`
	Total     time.Duration `json:"total"`
	Min       time.Duration `json:"min"`
	Max       time.Duration `json:"max"`
	Last      time.Duration `json:"last"`
}

// Tracker collects per-operation timings and record throughput for one
// command invocation. All methods are safe for concurrent use; a full
// buffer of observations never blocks the operation being measured.
type Tracker struct {
	mu     sync.Mutex
	timers map[Operation]*Timer

	recordsLoaded atomic.Int64
	parseFailures atomic.Int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{timers: make(map[Operation]*Timer)}
}

func (t *Tracker) timer(op Operation) *Timer {
	t.mu.Lock()
	defer t.mu.Unlock()
	timer, ok := t.timers[op]
	if !ok {
		timer = &Timer{}
		t.timers[op] = timer
	}
	return timer
}

// Track times fn under the named operation. The error is passed through;
// failures are counted for parse operations.
func (t *Tracker) Track(op Operation, fn func() error) error {
	start := time.Now()
	err := fn()
	t.timer(op).Record(time.Since(start))

	if err != nil && op == OperationParse {
		t.parseFailures.Add(1)
	}
	return err
}

// RecordsLoaded adds to the loaded-record counter.
func (t *Tracker) RecordsLoaded(n int) {
	t.recordsLoaded.Add(int64(n))
}

// TotalRecordsLoaded returns the number of records loaded so far.
func (t *Tracker) TotalRecordsLoaded() int64 {
	return t.recordsLoaded.Load()
}

// ParseFailures returns the number of failed parse operations.
func (t *Tracker) ParseFailures() int64 {
	return t.parseFailures.Load()
}

// Snapshot returns the accumulated stats for every tracked operation.
func (t *Tracker) Snapshot() []OperationStats {
	t.mu.Lock()
	ops := make([]Operation, 0, len(t.timers))
	timers := make([]*Timer, 0, len(t.timers))
	for op, timer := range t.timers {
		ops = append(ops, op)
		timers = append(timers, timer)
	}
	t.mu.Unlock()

	stats := make([]OperationStats, 0, len(ops))
	for i, timer := range timers {
		count, total, min, max, last := timer.snapshot()
		stats = append(stats, OperationStats{
			Operation: ops[i],
			Count:     count,
			Total:     total,
			Min:       min,
			Max:       max,
			Last:      last,
		})
	}
	return stats
}
