package analyze

import (
	"testing"

	"github.com/loggrid/loggrid/internal/palette"
	"github.com/loggrid/loggrid/internal/record"
)

var logOrder = []string{"Timestamp", "Level", "Message"}

func logRecord(ts, level, msg string) *record.Record {
	fields := make(map[string]string)
	if ts != "" {
		fields["Timestamp"] = ts
	}
	if level != "" {
		fields["Level"] = level
	}
	if msg != "" {
		fields["Message"] = msg
	}
	return record.New(logOrder, fields)
}

func TestAggregateCountsAndOrder(t *testing.T) {
	records := []*record.Record{
		logRecord("", "INFO", "a"),
		logRecord("", "ERROR", "b"),
		logRecord("", "ERROR", "c"),
		logRecord("", "WARN", "d"),
		logRecord("", "ERROR", "e"),
		logRecord("", "WARN", "f"),
	}

	groups := Aggregate("Level", records, palette.NewWithSeed(1))
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}

	want := []struct {
		key   string
		count int
	}{
		{"ERROR", 3},
		{"WARN", 2},
		{"INFO", 1},
	}
	for i, w := range want {
		if groups[i].Key != w.key || groups[i].Count != w.count {
			t.Errorf("group %d = %s/%d, want %s/%d", i, groups[i].Key, groups[i].Count, w.key, w.count)
		}
	}
}

func TestAggregateTiesKeepEncounterOrder(t *testing.T) {
	records := []*record.Record{
		logRecord("", "WARN", "a"),
		logRecord("", "INFO", "b"),
		logRecord("", "WARN", "c"),
		logRecord("", "INFO", "d"),
	}

	groups := Aggregate("Level", records, palette.NewWithSeed(1))
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// WARN was encountered first; the tie must not reorder it.
	if groups[0].Key != "WARN" || groups[1].Key != "INFO" {
		t.Errorf("tie order = %s, %s; want WARN, INFO", groups[0].Key, groups[1].Key)
	}
}

func TestAggregateSkipsEmptyAndSentinel(t *testing.T) {
	records := []*record.Record{
		logRecord("", "ERROR", "a"),
		logRecord("", "  ", "b"),
		logRecord("", record.NotAvailable, "c"),
		logRecord("", "", "d"), // level key absent entirely
	}

	groups := Aggregate("Level", records, palette.NewWithSeed(1))
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "ERROR" || groups[0].Count != 1 {
		t.Errorf("group = %s/%d", groups[0].Key, groups[0].Count)
	}
}

func TestAggregateGroupTotalInvariant(t *testing.T) {
	records := []*record.Record{
		logRecord("", "A", ""),
		logRecord("", "B", ""),
		logRecord("", "A", ""),
		logRecord("", "", ""),
		logRecord("", record.NotAvailable, ""),
	}

	groups := Aggregate("Level", records, palette.NewWithSeed(1))

	countable := 0
	for _, r := range records {
		if v, ok := r.Value("Level"); ok && v != "" && v != record.NotAvailable {
			countable++
		}
	}
	if got := TotalCount(groups); got != countable {
		t.Errorf("group total = %d, want %d", got, countable)
	}
}

func TestAggregateUnknownFieldIsEmpty(t *testing.T) {
	records := []*record.Record{logRecord("", "INFO", "a")}

	if groups := Aggregate("NoSuchField", records, palette.NewWithSeed(1)); len(groups) != 0 {
		t.Errorf("got %d groups for unknown field, want 0", len(groups))
	}
	if groups := Aggregate("Level", nil, palette.NewWithSeed(1)); len(groups) != 0 {
		t.Errorf("got %d groups for empty input, want 0", len(groups))
	}
}

func TestHistogramGranularities(t *testing.T) {
	records := []*record.Record{
		logRecord("2024-01-10 09:15:00", "INFO", "a"),
		logRecord("2024-01-10 09:45:00", "INFO", "b"),
		logRecord("2024-01-10 11:00:00", "INFO", "c"),
		logRecord("2024-02-01 08:00:00", "INFO", "d"),
	}

	tests := []struct {
		granularity Granularity
		wantLabels  []string
		wantCounts  []int
	}{
		{GranularityHour, []string{"2024-01-10 09", "2024-01-10 11", "2024-02-01 08"}, []int{2, 1, 1}},
		{GranularityDay, []string{"2024-01-10", "2024-02-01"}, []int{3, 1}},
		{GranularityWeek, []string{"2024-02", "2024-05"}, []int{3, 1}},
		{GranularityMonth, []string{"2024-01", "2024-02"}, []int{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.granularity.String(), func(t *testing.T) {
			bins := Histogram("Timestamp", tt.granularity, records)
			if len(bins) != len(tt.wantLabels) {
				t.Fatalf("got %d bins, want %d: %+v", len(bins), len(tt.wantLabels), bins)
			}
			for i := range bins {
				if bins[i].Label != tt.wantLabels[i] || bins[i].Count != tt.wantCounts[i] {
					t.Errorf("bin %d = %s/%d, want %s/%d",
						i, bins[i].Label, bins[i].Count, tt.wantLabels[i], tt.wantCounts[i])
				}
			}
		})
	}
}

func TestHistogramChronologicalOrder(t *testing.T) {
	records := []*record.Record{
		logRecord("2024-03-01 10:00:00", "INFO", "late"),
		logRecord("2024-01-01 10:00:00", "INFO", "early"),
		logRecord("2024-02-01 10:00:00", "INFO", "middle"),
	}

	bins := Histogram("Timestamp", GranularityMonth, records)
	for i := 1; i < len(bins); i++ {
		if bins[i-1].Label >= bins[i].Label {
			t.Errorf("bins not ascending: %s before %s", bins[i-1].Label, bins[i].Label)
		}
	}
}

func TestHistogramDropsUnparseable(t *testing.T) {
	records := []*record.Record{
		logRecord("2024-01-10 09:00:00", "INFO", "a"),
		logRecord("garbage", "INFO", "b"),
		logRecord("", "INFO", "c"), // timestamp absent
	}

	bins := Histogram("Timestamp", GranularityDay, records)
	if len(bins) != 1 || bins[0].Count != 1 {
		t.Errorf("bins = %+v, want single count of 1", bins)
	}
}

func TestHistogramISOWeekAcrossYearBoundary(t *testing.T) {
	// 2024-12-30 and 2025-01-02 are both in ISO week 1 of 2025.
	records := []*record.Record{
		logRecord("2024-12-30 10:00:00", "INFO", "a"),
		logRecord("2025-01-02 10:00:00", "INFO", "b"),
	}

	bins := Histogram("Timestamp", GranularityWeek, records)
	if len(bins) != 1 {
		t.Fatalf("got %d bins, want 1: %+v", len(bins), bins)
	}
	if bins[0].Label != "2025-01" || bins[0].Count != 2 {
		t.Errorf("bin = %s/%d, want 2025-01/2", bins[0].Label, bins[0].Count)
	}
}

func TestParseGranularity(t *testing.T) {
	for _, name := range []string{"hour", "day", "week", "month"} {
		g, err := ParseGranularity(name)
		if err != nil {
			t.Errorf("ParseGranularity(%q): %v", name, err)
		}
		if g.String() != name {
			t.Errorf("round trip %q -> %q", name, g.String())
		}
	}
	if _, err := ParseGranularity("fortnight"); err == nil {
		t.Error("expected error for unknown granularity")
	}
}
