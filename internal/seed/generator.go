// Package seed produces the reproducible demo dataset the repositories
// bootstrap from. All randomness comes from a single seeded 32-bit
// generator, so the same seed and reference time always yield the
// identical dataset. It is not cryptographically secure and does not need
// to be.
package seed

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// DefaultSeed and DefaultCount match the stock demo dataset.
const (
	DefaultSeed  = 123456
	DefaultCount = 40
)

// mulberry32 is a tiny deterministic PRNG over 32-bit integer state.
type mulberry32 struct {
	state uint32
}

// next returns the next draw in [0, 1).
func (m *mulberry32) next() float64 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// City anchors generated events to a plausible map location.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// Cities is the catalog generated events are scattered around.
var Cities = []City{
	{Name: "Mumbai", Lat: 19.076, Lng: 72.8777},
	{Name: "Delhi", Lat: 28.7041, Lng: 77.1025},
	{Name: "Bengaluru", Lat: 12.9716, Lng: 77.5946},
	{Name: "Hyderabad", Lat: 17.385, Lng: 78.4867},
	{Name: "Chennai", Lat: 13.0827, Lng: 80.2707},
	{Name: "Kolkata", Lat: 22.5726, Lng: 88.3639},
	{Name: "Pune", Lat: 18.5204, Lng: 73.8567},
}

var categoryTags = map[domain.Category][]string{
	domain.CategoryFraud:  {"chargeback", "card", "abuse", "kyc", "anomaly"},
	domain.CategoryOps:    {"latency", "throughput", "incident", "ops", "pipeline"},
	domain.CategorySafety: {"safety", "incident", "policy", "alert", "moderation"},
	domain.CategorySales:  {"conversion", "lead", "pipeline", "deal", "crm"},
	domain.CategoryHealth: {"vitals", "device", "clinic", "reporting", "triage"},
}

var categoryTitles = map[domain.Category][]string{
	domain.CategoryFraud:  {"Chargeback spike", "Multiple failed OTPs", "Unusual refund rate", "Velocity alert"},
	domain.CategoryOps:    {"Ingress latency", "Queue backlog", "Worker restart", "Data sync delayed"},
	domain.CategorySafety: {"Content violation", "Policy breach flagged", "Abuse report surge", "Escalation queue"},
	domain.CategorySales:  {"Lead drop-off", "Campaign anomaly", "Checkout conversion dip", "High-value lead"},
	domain.CategoryHealth: {"Device offline", "Vitals drift", "Report delay", "Remote triage needed"},
}

var categoryDescriptions = map[domain.Category][]string{
	domain.CategoryFraud: {
		"Detected increase in chargeback patterns from a single BIN range.",
		"High velocity of OTP failures indicating possible credential stuffing.",
	},
	domain.CategoryOps: {
		"P99 latency elevated on ingestion pipeline affecting live dashboards.",
		"Background workers restarting due to memory pressure on node pool.",
	},
	domain.CategorySafety: {
		"Spike in user reports for harassment across multiple channels.",
		"Automated policy breach detection triggered for uploaded content.",
	},
	domain.CategorySales: {
		"Observed decline in checkout conversion for mobile traffic segment.",
		"Leads from new campaign show higher drop-off at qualification stage.",
	},
	domain.CategoryHealth: {
		"Wearable devices reporting stale vitals beyond SLA.",
		"Clinical report ingestion delayed; notify care team.",
	},
}

// Events generates count synthetic events relative to now. The draw order
// per event is fixed (category, severity, city, title, description, age,
// tag count, tags, score, confidence, impact, jitter), which is what makes
// the dataset reproducible for a given seed.
func Events(seedValue uint32, count int, now time.Time) []domain.Event {
	rng := &mulberry32{state: seedValue}
	events := make([]domain.Event, 0, count)

	for i := 0; i < count; i++ {
		category := pick(domain.Categories, rng)
		severity := pick(domain.Severities, rng)
		city := pick(Cities, rng)
		title := pick(categoryTitles[category], rng)
		description := pick(categoryDescriptions[category], rng)

		ageDays := int(rng.next() * 30)
		createdAt := now.Add(-time.Duration(ageDays) * 24 * time.Hour).UTC()

		tagCount := 1 + int(rng.next()*4)
		tags := make([]string, 0, tagCount)
		for t := 0; t < tagCount; t++ {
			tags = appendUnique(tags, pick(categoryTags[category], rng))
		}

		score := math.Round(between(20, 95, rng))
		confidence := round2(between(0.4, 0.95, rng))
		impact := math.Round(between(20, 500, rng))

		events = append(events, domain.Event{
			ID:          fmt.Sprintf("evt-%d", i+1),
			Title:       title,
			Description: description,
			Category:    category,
			Severity:    severity,
			CreatedAt:   createdAt,
			Location: domain.Location{
				Lat: city.Lat + rng.next()*0.05,
				Lng: city.Lng + rng.next()*0.05,
			},
			Metrics: domain.Metrics{
				Score:      score,
				Confidence: confidence,
				Impact:     impact,
			},
			Tags: tags,
		})
	}

	return events
}

// Users returns the demo accounts, one per role. They all share the
// password "password"; the hash is generated at bootstrap, not stored.
func Users() []domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		// Only reachable with an invalid cost constant.
		panic(err)
	}
	return []domain.User{
		{ID: "u-admin", Email: "admin@test.com", Role: domain.RoleAdmin, PasswordHash: string(hash)},
		{ID: "u-analyst", Email: "analyst@test.com", Role: domain.RoleAnalyst, PasswordHash: string(hash)},
		{ID: "u-viewer", Email: "viewer@test.com", Role: domain.RoleViewer, PasswordHash: string(hash)},
	}
}

func pick[T any](options []T, rng *mulberry32) T {
	return options[int(rng.next()*float64(len(options)))]
}

// between draws from [min, max] rounded to 2 decimal places.
func between(min, max float64, rng *mulberry32) float64 {
	return round2(min + (max-min)*rng.next())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func appendUnique(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return tags
		}
	}
	return append(tags, tag)
}
