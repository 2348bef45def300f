package domain

import "time"

// Category classifies the operational area an insight event belongs to.
type Category string

const (
	CategoryFraud  Category = "Fraud"
	CategoryOps    Category = "Ops"
	CategorySafety Category = "Safety"
	CategorySales  Category = "Sales"
	CategoryHealth Category = "Health"
)

// Categories lists every valid category in canonical order.
var Categories = []Category{CategoryFraud, CategoryOps, CategorySafety, CategorySales, CategoryHealth}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Severity ranks an insight event. Severities are totally ordered:
// Low < Medium < High.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Severities lists every valid severity in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

var severityRank = map[Severity]int{
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// Rank returns the ordinal position of s (Low=1, Medium=2, High=3).
// Comparisons between severities must use Rank, never the string form.
func (s Severity) Rank() int { return severityRank[s] }

// Valid reports whether s is one of the enumerated severities.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Location is a point on the map an event is anchored to.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Metrics carries the numeric signals attached to an event.
// Score is bounded to [0,100], Confidence to [0,1], Impact is non-negative.
type Metrics struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Impact     float64 `json:"impact"`
}

// Event is a recorded anomaly or incident. ID and CreatedAt are assigned
// once at creation and never change; every other field is mutable through
// a partial update.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"createdAt"`
	Location    Location  `json:"location"`
	Metrics     Metrics   `json:"metrics"`
	Tags        []string  `json:"tags"`
}

// Clone returns a deep copy of the event so repository callers can never
// alias stored state through the Tags slice.
func (e Event) Clone() Event {
	out := e
	out.Tags = append([]string(nil), e.Tags...)
	return out
}
