package query

import (
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// PageMeta describes the slice Paginate returned. Total is always the
// pre-pagination count.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices events for the requested page. The page number is
// clamped into [1, totalPages] before slicing, so an out-of-range request
// returns the nearest valid page instead of an error. totalPages is never
// below 1, even for an empty collection.
func Paginate(events []domain.Event, page, pageSize int) ([]domain.Event, PageMeta) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(events)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]domain.Event, end-start)
	copy(items, events[start:end])

	return items, PageMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
