package filter

import (
	"strconv"
	"strings"
	"time"
)

// genericLayouts are tried in order for the common machine-readable
// timestamp shapes before falling back to the web-server style below.
var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"02 Jan 2006 15:04:05",
	"2006-01-02",
}

// accessLogLayout matches Apache/Nginx access-log timestamps, e.g.
// [10/Jan/2024:13:55:36 +0000]. The surrounding brackets are stripped
// before parsing.
const accessLogLayout = "02/Jan/2006:15:04:05 -0700"

// ParseTimestamp parses a field value into a timestamp using the two-stage
// fallback shared by the filter and bucketing engines: the generic layout
// list first, then the bracketed access-log form.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	trimmed := strings.TrimPrefix(s, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	if t, err := time.Parse(accessLogLayout, trimmed); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseTimeOfDay parses free-form H:M, HH:MM, H:M:S or HH:MM:SS text.
func ParseTimeOfDay(s string) (hour, minute, second int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 {
			return 0, 0, 0, false
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	hour, minute = nums[0], nums[1]
	if len(nums) == 3 {
		second = nums[2]
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, false
	}
	return hour, minute, second, true
}
