package filter

import (
	"strings"
	"time"

	"github.com/loggrid/loggrid/internal/record"
)

// Criteria describes one date/time range plus keyword filter. The view
// keeps a long-lived instance for the grid; charts pass their own ad-hoc
// instance per call. A Criteria is a plain value and safe to copy.
type Criteria struct {
	StartDate      *time.Time
	EndDate        *time.Time
	StartTimeText  string
	EndTimeText    string
	TimestampField string
	Search         string
	Invert         bool
}

// Combine merges a calendar date with free-form time-of-day text into a
// concrete bound. A nil date contributes no bound. A present date with
// blank text resolves to midnight. Unparseable text also contributes no
// bound so malformed user input degrades instead of erroring.
func Combine(date *time.Time, timeText string) (time.Time, bool) {
	if date == nil {
		return time.Time{}, false
	}
	text := strings.TrimSpace(timeText)
	if text == "" {
		y, m, d := date.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, date.Location()), true
	}
	hour, minute, second, ok := ParseTimeOfDay(text)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, second, 0, date.Location()), true
}

// Bounds resolves the criteria's dates and time texts into concrete range
// bounds. An end date with blank time text is pushed to the last instant of
// that calendar day, making the range inclusive of the whole day.
func (c Criteria) Bounds() (lower, upper time.Time, hasLower, hasUpper bool) {
	lower, hasLower = Combine(c.StartDate, c.StartTimeText)
	if c.EndDate != nil && strings.TrimSpace(c.EndTimeText) == "" {
		y, m, d := c.EndDate.Date()
		upper = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), c.EndDate.Location())
		hasUpper = true
		return lower, upper, hasLower, hasUpper
	}
	upper, hasUpper = Combine(c.EndDate, c.EndTimeText)
	return lower, upper, hasLower, hasUpper
}

// Keywords splits the search text into lowercase tokens. Empty search
// means no tokens, which matches everything.
func (c Criteria) Keywords() []string {
	return strings.Fields(strings.ToLower(c.Search))
}

// Apply computes the subset of records satisfying the criteria. It is pure
// and deterministic, so the grid and any number of charts may call it
// concurrently over the same snapshot.
func Apply(records []*record.Record, c Criteria) []*record.Record {
	lower, upper, hasLower, hasUpper := c.Bounds()
	keywords := c.Keywords()

	out := make([]*record.Record, 0, len(records))
	for _, r := range records {
		if !passesRange(r, c.TimestampField, lower, upper, hasLower, hasUpper) {
			continue
		}
		match := matchesKeywords(r, keywords)
		if c.Invert {
			// Only the keyword result is inverted; the date range
			// filter always applies as-is.
			match = !match
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}

// passesRange checks the record's timestamp field against the resolved
// bounds. With no bounds set every record passes; with bounds set but no
// timestamp field chosen the target is ambiguous and every record fails.
func passesRange(r *record.Record, timestampField string, lower, upper time.Time, hasLower, hasUpper bool) bool {
	if !hasLower && !hasUpper {
		return true
	}
	if timestampField == "" {
		return false
	}
	value, ok := r.Value(timestampField)
	if !ok {
		return false
	}
	ts, ok := ParseTimestamp(value)
	if !ok {
		return false
	}
	if hasLower && ts.Before(lower) {
		return false
	}
	if hasUpper && ts.After(upper) {
		return false
	}
	return true
}

// matchesKeywords implements AND across tokens, OR across field values per
// token, case-insensitively.
func matchesKeywords(r *record.Record, keywords []string) bool {
	for _, kw := range keywords {
		found := false
		for _, name := range r.FieldOrder {
			v, ok := r.Fields[name]
			if ok && strings.Contains(strings.ToLower(v), kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
