package usecase

import (
	"math"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// EventInput is the payload for creating an event. Every field is required.
type EventInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
	Severity    domain.Severity `json:"severity"`
	Location    domain.Location `json:"location"`
	Metrics     domain.Metrics  `json:"metrics"`
	Tags        []string        `json:"tags"`
}

// EventPatch is a partial update. Only present (non-nil) fields are
// applied; ID and CreatedAt can never be touched through a patch.
type EventPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *domain.Category `json:"category"`
	Severity    *domain.Severity `json:"severity"`
	Location    *domain.Location `json:"location"`
	Metrics     *domain.Metrics  `json:"metrics"`
	Tags        *[]string        `json:"tags"`
}

// Validate checks every field and reports all failures at once.
func (in EventInput) Validate() error {
	verr := &domain.ValidationError{}

	if in.Title == "" {
		verr.Add("title", "required")
	}
	if in.Description == "" {
		verr.Add("description", "required")
	}
	if !in.Category.Valid() {
		verr.Add("category", "unknown category")
	}
	if !in.Severity.Valid() {
		verr.Add("severity", "unknown severity")
	}
	validateLocation(verr, in.Location)
	validateMetrics(verr, in.Metrics)
	validateTags(verr, in.Tags)

	return verr.Err()
}

// Validate checks only the fields present in the patch.
func (p EventPatch) Validate() error {
	verr := &domain.ValidationError{}

	if p.Title != nil && *p.Title == "" {
		verr.Add("title", "must be non-empty")
	}
	if p.Description != nil && *p.Description == "" {
		verr.Add("description", "must be non-empty")
	}
	if p.Category != nil && !p.Category.Valid() {
		verr.Add("category", "unknown category")
	}
	if p.Severity != nil && !p.Severity.Valid() {
		verr.Add("severity", "unknown severity")
	}
	if p.Location != nil {
		validateLocation(verr, *p.Location)
	}
	if p.Metrics != nil {
		validateMetrics(verr, *p.Metrics)
	}
	if p.Tags != nil {
		validateTags(verr, *p.Tags)
	}

	return verr.Err()
}

// apply merges the present fields of the patch onto a copy of the stored
// event. The whitelist is exactly the mutable field set; identity and
// creation timestamp are preserved by construction.
func (p EventPatch) apply(existing domain.Event) domain.Event {
	out := existing.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Severity != nil {
		out.Severity = *p.Severity
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Metrics != nil {
		out.Metrics = *p.Metrics
	}
	if p.Tags != nil {
		out.Tags = dedupeTags(*p.Tags)
	}
	return out
}

func validateLocation(verr *domain.ValidationError, loc domain.Location) {
	if math.IsNaN(loc.Lat) || math.IsInf(loc.Lat, 0) {
		verr.Add("location.lat", "must be a finite number")
	}
	if math.IsNaN(loc.Lng) || math.IsInf(loc.Lng, 0) {
		verr.Add("location.lng", "must be a finite number")
	}
}

func validateMetrics(verr *domain.ValidationError, m domain.Metrics) {
	if math.IsNaN(m.Score) || m.Score < 0 || m.Score > 100 {
		verr.Add("metrics.score", "must be between 0 and 100")
	}
	if math.IsNaN(m.Confidence) || m.Confidence < 0 || m.Confidence > 1 {
		verr.Add("metrics.confidence", "must be between 0 and 1")
	}
	if math.IsNaN(m.Impact) || math.IsInf(m.Impact, 0) || m.Impact < 0 {
		verr.Add("metrics.impact", "must be zero or greater")
	}
}

func validateTags(verr *domain.ValidationError, tags []string) {
	if len(tags) == 0 {
		verr.Add("tags", "at least one tag is required")
		return
	}
	for _, tag := range tags {
		if tag == "" {
			verr.Add("tags", "tags must be non-empty")
			return
		}
	}
}

// dedupeTags removes duplicates while keeping first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
