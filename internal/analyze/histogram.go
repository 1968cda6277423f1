package analyze

import (
	"fmt"
	"sort"
	"time"

	"github.com/loggrid/loggrid/internal/filter"
	"github.com/loggrid/loggrid/internal/record"
)

// Granularity is the time-rounding unit used for histogram bucketing.
type Granularity int

const (
	GranularityHour Granularity = iota
	GranularityDay
	GranularityWeek
	GranularityMonth
)

func (g Granularity) String() string {
	switch g {
	case GranularityHour:
		return "hour"
	case GranularityDay:
		return "day"
	case GranularityWeek:
		return "week"
	case GranularityMonth:
		return "month"
	default:
		return "unknown"
	}
}

// ParseGranularity parses a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "hour":
		return GranularityHour, nil
	case "day":
		return GranularityDay, nil
	case "week":
		return GranularityWeek, nil
	case "month":
		return GranularityMonth, nil
	default:
		return GranularityDay, fmt.Errorf("unknown granularity %q (available: hour, day, week, month)", s)
	}
}

// Bin is one time bucket of the histogram. All bins share a single display
// color, unlike aggregation groups.
type Bin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Histogram buckets records by the timestamp field at the given
// granularity. Records whose timestamp is missing or unparseable are
// dropped silently. Bucket labels are lexicographically sortable, so the
// ascending label order returned here is chronological.
func Histogram(field string, g Granularity, records []*record.Record) []Bin {
	counts := make(map[string]int)
	for _, r := range records {
		value, ok := r.Value(field)
		if !ok {
			continue
		}
		ts, ok := filter.ParseTimestamp(value)
		if !ok {
			continue
		}
		counts[bucketLabel(ts, g)]++
	}

	bins := make([]Bin, 0, len(counts))
	for label, count := range counts {
		bins = append(bins, Bin{Label: label, Count: count})
	}
	sort.Slice(bins, func(i, j int) bool {
		return bins[i].Label < bins[j].Label
	})
	return bins
}

// bucketLabel derives the bucket key for a timestamp. Week buckets use the
// ISO week (Monday start, first four-day week) with the ISO year included
// so week numbers never collide across year boundaries.
func bucketLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityHour:
		return t.Format("2006-01-02 15")
	case GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-%02d", year, week)
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
