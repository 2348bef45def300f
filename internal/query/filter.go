package query

import (
	"strings"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// dateLayouts are the accepted forms for explicit startDate/endDate bounds.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Filter returns the subsequence of events matching every predicate of q.
// Input order is preserved and the input slice is never mutated. The
// relative-days window is evaluated against the supplied now, and takes
// precedence over explicit date bounds when both are present.
func Filter(events []domain.Event, q Query, now time.Time) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if matches(e, q, now) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e domain.Event, q Query, now time.Time) bool {
	if q.Text != "" && !matchesText(e, q.Text) {
		return false
	}
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if q.Severity != "" && e.Severity != q.Severity {
		return false
	}
	if q.MinScore != nil && e.Metrics.Score < *q.MinScore {
		return false
	}

	if q.Days > 0 {
		cutoff := now.Add(-time.Duration(q.Days) * 24 * time.Hour)
		if e.CreatedAt.Before(cutoff) {
			return false
		}
	} else if q.StartDate != "" || q.EndDate != "" {
		// Unparseable bounds are ignored, not rejected.
		if start, ok := parseDate(q.StartDate); ok && e.CreatedAt.Before(start) {
			return false
		}
		if end, ok := parseDate(q.EndDate); ok && e.CreatedAt.After(end) {
			return false
		}
	}

	return true
}

// matchesText is a case-insensitive substring match against the title or
// any tag.
func matchesText(e domain.Event, text string) bool {
	needle := strings.ToLower(text)
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
