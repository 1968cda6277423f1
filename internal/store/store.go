package store

import (
	"sync"
	"sync/atomic"

	"github.com/loggrid/loggrid/internal/record"
)

const subscriberBuffer = 16

// EventType discriminates store notifications.
type EventType int

const (
	// EventReset signals that the whole record set was replaced. Bulk
	// loads emit exactly one of these, never per-record notifications.
	EventReset EventType = iota
)

// Event is delivered to subscribers whenever the store content changes.
type Event struct {
	Type    EventType
	Records int
}

// Store owns all currently loaded records plus the active pattern
// definition. Replacement is atomic: readers observe either the old set or
// the new one, never a partial mix. The store knows nothing about filters;
// dependent views recompute by observing reset events.
type Store struct {
	mu      sync.RWMutex
	records []*record.Record
	pattern *record.PatternDefinition
	subs    []chan Event
	dropped atomic.Int64
}

// New creates an empty store with the built-in default pattern active.
func New() *Store {
	return &Store{pattern: record.DefaultPattern()}
}

// Load atomically replaces all records and the active pattern, then
// broadcasts a single reset event. When record field orders line up with
// the pattern, each record is re-pointed at the pattern's shared FieldNames
// slice so a million-row load does not carry a million copies of it.
func (s *Store) Load(records []*record.Record, pattern *record.PatternDefinition) {
	s.mu.Lock()
	if pattern != nil {
		for _, r := range records {
			if len(r.FieldOrder) == len(pattern.FieldNames) {
				r.FieldOrder = pattern.FieldNames
			}
		}
		s.pattern = pattern
	}
	s.records = records
	subs := make([]chan Event, len(s.subs))
	copy(subs, s.subs)
	n := len(records)
	s.mu.Unlock()

	s.broadcast(subs, Event{Type: EventReset, Records: n})
}

// SetPattern replaces only the active pattern definition. Used by the
// coordinator when a suggestion lands before any parse has run.
func (s *Store) SetPattern(pattern *record.PatternDefinition) {
	if pattern == nil {
		return
	}
	s.mu.Lock()
	s.pattern = pattern
	s.mu.Unlock()
}

// Snapshot returns the current record set. The slice is replaced wholesale
// on Load and individual records are immutable, so callers may read it
// without copying.
func (s *Store) Snapshot() []*record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Pattern returns the active pattern definition.
func (s *Store) Pattern() *record.PatternDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pattern
}

// Fields returns a copy of the active pattern's ordered field names.
func (s *Store) Fields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pattern == nil {
		return nil
	}
	fields := make([]string, len(s.pattern.FieldNames))
	copy(fields, s.pattern.FieldNames)
	return fields
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// IsEmpty reports whether no records are loaded.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Subscribe returns a buffered channel receiving store events. Slow
// consumers have events dropped rather than blocking the loader.
func (s *Store) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Dropped returns the total number of events dropped for slow consumers.
func (s *Store) Dropped() int64 {
	return s.dropped.Load()
}

func (s *Store) broadcast(subs []chan Event, ev Event) {
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			s.dropped.Add(1)
		}
	}
}
