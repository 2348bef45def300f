// Package query turns untrusted request parameters into a typed, bounded
// query and applies it to an event collection as a pure
// filter -> sort -> paginate pipeline. Nothing in this package mutates
// events or reads the wall clock; callers supply "now" explicitly.
package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// SortKey selects the comparator used by Sort.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortBySeverity  SortKey = "severity"
	SortByScore     SortKey = "score"
)

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Pagination bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 500
)

// Query is a validated set of filter, sort, and pagination parameters.
// Zero values mean "absent" for the optional filters: empty Text/Category/
// Severity/StartDate/EndDate, nil MinScore, Days == 0.
type Query struct {
	Text      string
	Category  domain.Category
	Severity  domain.Severity
	MinScore  *float64
	Days      int
	StartDate string
	EndDate   string
	SortBy    SortKey
	SortDir   SortDir
	Page      int
	PageSize  int
}

// Parse validates raw key-value parameters into a Query. Unknown keys are
// ignored and empty values are treated as absent. On failure it returns a
// *domain.ValidationError listing every offending field; it never returns
// a partially-applied query.
func Parse(raw url.Values) (Query, error) {
	q := Query{
		SortBy:   SortByCreatedAt,
		SortDir:  SortDesc,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
	verr := &domain.ValidationError{}

	q.Text = raw.Get("q")

	if v := raw.Get("category"); v != "" {
		c := domain.Category(v)
		if !c.Valid() {
			verr.Add("category", fmt.Sprintf("must be one of %v", domain.Categories))
		} else {
			q.Category = c
		}
	}

	if v := raw.Get("severity"); v != "" {
		s := domain.Severity(v)
		if !s.Valid() {
			verr.Add("severity", fmt.Sprintf("must be one of %v", domain.Severities))
		} else {
			q.Severity = s
		}
	}

	if v := raw.Get("minScore"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil || math.IsNaN(n) || math.IsInf(n, 0):
			verr.Add("minScore", "must be a number")
		case n < 0 || n > 100:
			verr.Add("minScore", "must be between 0 and 100")
		default:
			q.MinScore = &n
		}
	}

	if v := raw.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n != 7 && n != 30) {
			verr.Add("days", "must be 7 or 30")
		} else {
			q.Days = n
		}
	}

	// Date bounds stay permissive: unparseable strings are ignored at
	// filter time rather than rejected here.
	q.StartDate = raw.Get("startDate")
	q.EndDate = raw.Get("endDate")

	if v := raw.Get("sortBy"); v != "" {
		switch SortKey(v) {
		case SortByCreatedAt, SortBySeverity, SortByScore:
			q.SortBy = SortKey(v)
		default:
			verr.Add("sortBy", "must be one of createdAt, severity, score")
		}
	}

	if v := raw.Get("sortDir"); v != "" {
		switch SortDir(v) {
		case SortAsc, SortDesc:
			q.SortDir = SortDir(v)
		default:
			verr.Add("sortDir", "must be asc or desc")
		}
	}

	if v := raw.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			verr.Add("page", "must be a positive integer")
		} else {
			q.Page = n
		}
	}

	if v := raw.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil || n < 1:
			verr.Add("pageSize", "must be a positive integer")
		case n > MaxPageSize:
			verr.Add("pageSize", fmt.Sprintf("must not exceed %d", MaxPageSize))
		default:
			q.PageSize = n
		}
	}

	if err := verr.Err(); err != nil {
		return Query{}, err
	}
	return q, nil
}
