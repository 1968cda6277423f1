package analyze

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/loggrid/loggrid/internal/palette"
	"github.com/loggrid/loggrid/internal/record"
)

// Group is one distinct value of the grouping field together with its
// record count and stable legend color.
type Group struct {
	Key   string         `json:"key"`
	Count int            `json:"count"`
	Color lipgloss.Color `json:"color"`
}

// Aggregate counts records by the trimmed value of the named field and
// returns groups ordered by descending count. Ties keep first-encounter
// order, which keeps repeated runs over the same snapshot deterministic.
// Empty and "N/A" values are skipped; an unknown field yields an empty
// result rather than an error.
func Aggregate(field string, records []*record.Record, pal *palette.Palette) []Group {
	groups := make([]Group, 0)
	if field == "" {
		return groups
	}

	index := make(map[string]int)
	for _, r := range records {
		value, ok := r.Value(field)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" || value == record.NotAvailable {
			continue
		}
		if i, seen := index[value]; seen {
			groups[i].Count++
			continue
		}
		index[value] = len(groups)
		groups = append(groups, Group{Key: value, Count: 1})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	for i := range groups {
		groups[i].Color = pal.Resolve(groups[i].Key)
	}
	return groups
}

// TotalCount sums the counts across groups.
func TotalCount(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}
