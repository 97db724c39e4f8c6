// Package pagination converts page/limit request parameters into an
// offset window and computes page metadata for list responses.
package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is the pagination block of a list response.
type Page struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Parse reads page/limit query values. Absent or non-numeric input
// falls back to the defaults; page is clamped to >=1 and limit to
// [1,MaxLimit] so a hostile query cannot produce a negative offset or
// an unbounded scan.
func Parse(pageStr, limitStr string) (page, limit int) {
	page = DefaultPage
	if n, err := strconv.Atoi(pageStr); err == nil {
		page = n
	}
	limit = DefaultLimit
	if n, err := strconv.Atoi(limitStr); err == nil {
		limit = n
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the number of records to skip for the given window.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// New computes the metadata for a page of total matching records.
// totalPages is ceil(total/limit); hasMore reports whether pages
// remain after the current one.
func New(page, limit, total int) Page {
	if limit < 1 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	return Page{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
