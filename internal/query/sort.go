package query

import (
	"sort"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// Sort returns a copy of events ordered by the chosen key. The sort is
// stable: there is no secondary tie-break key, so equal elements keep
// their relative input order whichever direction is requested. The input
// slice is never mutated.
func Sort(events []domain.Event, key SortKey, dir SortDir) []domain.Event {
	out := make([]domain.Event, len(events))
	copy(out, events)

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], key)
		if dir == SortDesc {
			c = -c
		}
		return c < 0
	})
	return out
}

// compare is the ascending comparator for key. Severity compares by rank
// (Low=1 < Medium=2 < High=3), never lexicographically.
func compare(a, b domain.Event, key SortKey) int {
	switch key {
	case SortBySeverity:
		return a.Severity.Rank() - b.Severity.Rank()
	case SortByScore:
		switch {
		case a.Metrics.Score < b.Metrics.Score:
			return -1
		case a.Metrics.Score > b.Metrics.Score:
			return 1
		}
		return 0
	default: // SortByCreatedAt
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
		return 0
	}
}
