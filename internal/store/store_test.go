package store

import (
	"testing"
	"time"

	"github.com/loggrid/loggrid/internal/record"
)

func testRecords(n int) []*record.Record {
	order := []string{"Timestamp", "Level", "Message"}
	records := make([]*record.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, record.New(order, map[string]string{"Level": "INFO"}))
	}
	return records
}

func TestLoadReplacesWholesale(t *testing.T) {
	s := New()
	if !s.IsEmpty() {
		t.Fatal("new store should be empty")
	}

	s.Load(testRecords(3), record.DefaultPattern())
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	s.Load(testRecords(1), record.DefaultPattern())
	if s.Len() != 1 {
		t.Fatalf("Len after reload = %d, want 1", s.Len())
	}
}

func TestLoadEmitsSingleResetEvent(t *testing.T) {
	s := New()
	events := s.Subscribe()

	s.Load(testRecords(5), record.DefaultPattern())

	select {
	case ev := <-events:
		if ev.Type != EventReset {
			t.Errorf("event type = %v, want reset", ev.Type)
		}
		if ev.Records != 5 {
			t.Errorf("event records = %d, want 5", ev.Records)
		}
	case <-time.After(time.Second):
		t.Fatal("no reset event delivered")
	}

	// Exactly one event per load, never one per record.
	select {
	case ev := <-events:
		t.Errorf("unexpected second event: %+v", ev)
	default:
	}
}

func TestLoadSharesFieldOrder(t *testing.T) {
	s := New()
	pattern := record.DefaultPattern()

	// Each record starts with its own field-order copy.
	records := make([]*record.Record, 3)
	for i := range records {
		order := []string{"Timestamp", "Level", "Message"}
		records[i] = record.New(order, map[string]string{"Level": "WARN"})
	}
	s.Load(records, pattern)

	for i, r := range records {
		if &r.FieldOrder[0] != &pattern.FieldNames[0] {
			t.Errorf("record %d field order not re-pointed at pattern slice", i)
		}
	}
}

func TestSetPattern(t *testing.T) {
	s := New()
	def := &record.PatternDefinition{
		Spec:       `(\S+) (\S+)`,
		FieldNames: []string{"Host", "Status"},
	}
	s.SetPattern(def)

	fields := s.Fields()
	if len(fields) != 2 || fields[0] != "Host" || fields[1] != "Status" {
		t.Errorf("Fields = %v", fields)
	}

	// Fields returns a copy; mutating it must not touch the pattern.
	fields[0] = "mutated"
	if s.Pattern().FieldNames[0] != "Host" {
		t.Error("Fields leaked internal slice")
	}
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	s := New()
	s.Subscribe() // never drained

	for i := 0; i < subscriberBuffer+4; i++ {
		s.Load(testRecords(1), nil)
	}

	if s.Dropped() == 0 {
		t.Error("expected dropped events for slow subscriber")
	}
}
