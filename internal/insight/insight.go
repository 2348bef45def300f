// Package insight derives aggregate analytics and narrative observations
// from an event collection. Every function is pure: the reference time is
// an explicit parameter and the input is never mutated. Tie-breaks follow
// first-encountered order over the input, so callers feeding repository
// output in creation order get deterministic results.
package insight

import (
	"fmt"
	"math"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// DefaultTrendDays is the trend window used when the caller does not pick one.
const DefaultTrendDays = 14

const day = 24 * time.Hour

// BreakdownEntry is one group of a categorical count. Entries are emitted
// in the first-seen order of each key.
type BreakdownEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendPoint is the event count for one calendar day (UTC, YYYY-MM-DD).
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Report bundles every derivation over a single event set.
type Report struct {
	CategoryBreakdown []BreakdownEntry `json:"categoryBreakdown"`
	SeverityBreakdown []BreakdownEntry `json:"severityBreakdown"`
	Trend             []TrendPoint     `json:"trend"`
	Narrative         []string         `json:"narrative"`
}

// Compute runs every derivation with the default trend window.
func Compute(events []domain.Event, now time.Time) Report {
	return Report{
		CategoryBreakdown: GroupByCategory(events),
		SeverityBreakdown: GroupBySeverity(events),
		Trend:             TrendByDay(events, DefaultTrendDays, now),
		Narrative:         Narrative(events, now),
	}
}

// GroupByCategory counts events per category in first-seen order.
func GroupByCategory(events []domain.Event) []BreakdownEntry {
	return groupBy(events, func(e domain.Event) string { return string(e.Category) })
}

// GroupBySeverity counts events per severity in first-seen order.
func GroupBySeverity(events []domain.Event) []BreakdownEntry {
	return groupBy(events, func(e domain.Event) string { return string(e.Severity) })
}

func groupBy(events []domain.Event, key func(domain.Event) string) []BreakdownEntry {
	counts := make(map[string]int)
	var order []string
	for _, e := range events {
		k := key(e)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]BreakdownEntry, len(order))
	for i, k := range order {
		out[i] = BreakdownEntry{Name: k, Count: counts[k]}
	}
	return out
}

// TrendByDay buckets events by calendar day over a trailing window ending
// at now. It always returns exactly windowDays points, oldest first, with
// zero counts filled in for quiet days.
func TrendByDay(events []domain.Event, windowDays int, now time.Time) []TrendPoint {
	if windowDays <= 0 {
		windowDays = DefaultTrendDays
	}
	start := now.Add(-time.Duration(windowDays) * day)

	counts := make(map[string]int)
	for _, e := range events {
		if e.CreatedAt.Before(start) {
			continue
		}
		counts[dayKey(e.CreatedAt)]++
	}

	points := make([]TrendPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		key := dayKey(now.Add(-time.Duration(i) * day))
		points = append(points, TrendPoint{Date: key, Count: counts[key]})
	}
	return points
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Narrative produces exactly three observations for any input, including
// an empty collection: the week-over-week high-severity delta, the top
// category of the trailing week, and the single highest-impact event.
func Narrative(events []domain.Event, now time.Time) []string {
	return []string{
		highSeverityDelta(events, now),
		topCategoryThisWeek(events, now),
		highestImpact(events),
	}
}

// highSeverityDelta compares High-severity counts in [now-7d, now) against
// [now-14d, now-7d).
func highSeverityDelta(events []domain.Event, now time.Time) string {
	weekAgo := now.Add(-7 * day)
	twoWeeksAgo := now.Add(-14 * day)

	var current, previous int
	for _, e := range events {
		if e.Severity != domain.SeverityHigh {
			continue
		}
		switch {
		case inRange(e.CreatedAt, weekAgo, now):
			current++
		case inRange(e.CreatedAt, twoWeeksAgo, weekAgo):
			previous++
		}
	}

	if previous == 0 {
		if current == 0 {
			return "High severity events unchanged vs previous 7 days (0)."
		}
		return "High severity events increased (none in the previous 7 days)."
	}

	pct := int(math.Round(float64(current-previous) / float64(previous) * 100))
	sign := ""
	if pct > 0 {
		sign = "+"
	}
	return fmt.Sprintf("High severity events %s%d%% vs previous 7 days.", sign, pct)
}

// inRange reports start <= t < end.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// topCategoryThisWeek picks the highest-count category of the trailing
// 7 days. Ties keep the first category encountered during aggregation.
func topCategoryThisWeek(events []domain.Event, now time.Time) string {
	weekAgo := now.Add(-7 * day)

	counts := make(map[domain.Category]int)
	var order []domain.Category
	for _, e := range events {
		if e.CreatedAt.Before(weekAgo) {
			continue
		}
		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	if len(order) == 0 {
		return "No category activity in the last 7 days."
	}

	top := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[top] {
			top = c
		}
	}
	return fmt.Sprintf("Top category this week: %s (%d).", top, counts[top])
}

// highestImpact reports the event with the maximum impact across the full
// input. Ties keep the earlier event ("keep current max unless strictly
// greater").
func highestImpact(events []domain.Event) string {
	if len(events) == 0 {
		return "No events in scope to compute impact."
	}

	top := events[0]
	for _, e := range events[1:] {
		if e.Metrics.Impact > top.Metrics.Impact {
			top = e
		}
	}
	return fmt.Sprintf("Highest impact: %s (impact %s).", top.Title, formatImpact(top.Metrics.Impact))
}

func formatImpact(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
