package emoji

import "strings"

// markers maps severity and status keys to an emoji plus an ASCII fallback.
var markers = map[string][2]string{
	"error":   {"🔴", "[ERR]"},
	"fatal":   {"🔴", "[FTL]"},
	"warn":    {"🟡", "[WRN]"},
	"warning": {"🟡", "[WRN]"},
	"info":    {"🔵", "[INF]"},
	"debug":   {"⚪", "[DBG]"},
	"trace":   {"⚪", "[TRC]"},
	"records": {"📊", "[REC]"},
	"watch":   {"👀", "[WATCH]"},
	"ok":      {"✅", "[OK]"},
}

const unknownMarker = "•"

var disabled bool

// SetDisabled switches every marker to its ASCII fallback.
func SetDisabled(d bool) {
	disabled = d
}

// Disabled reports whether ASCII fallbacks are in use.
func Disabled() bool {
	return disabled
}

// Marker returns the emoji for a key, or its ASCII fallback when emoji are
// disabled. Unknown keys get a plain bullet so group listings stay aligned
// regardless of what values the grouping field holds.
func Marker(key string) string {
	m, ok := markers[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return unknownMarker
	}
	if disabled {
		return m[1]
	}
	return m[0]
}
