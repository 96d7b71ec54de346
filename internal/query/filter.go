// Package query implements the filtering and pagination applied to the
// listing collection. Matches is a pure function so the server path and the
// in-process client mirror share one implementation of the predicate
// semantics instead of drifting apart.
package query

import (
	"strings"

	"github.com/hoang-11jjk/RealEstatePro/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 9
	MaxLimit     = 100
)

// Filter is an AND-combination of optional predicates. Zero-value fields
// impose no constraint; nil price/area bounds are open-ended.
type Filter struct {
	Keyword    string
	Location   string
	Type       models.PropertyType
	Status     models.MarketStatus
	Visibility models.Visibility
	MinPrice   *int64
	MaxPrice   *int64
	MinArea    *float64
	MaxArea    *float64
}

// Empty reports whether the filter imposes no constraint at all.
func (f Filter) Empty() bool {
	return f.Keyword == "" && f.Location == "" && f.Type == "" && f.Status == "" &&
		f.Visibility == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinArea == nil && f.MaxArea == nil
}

// Matches reports whether p satisfies every supplied predicate. Keyword and
// location use case-insensitive substring containment; keyword matches
// against title or description. Numeric ranges are inclusive.
func Matches(p models.Property, f Filter) bool {
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(p.Title), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) {
			return false
		}
	}
	if f.Location != "" &&
		!strings.Contains(strings.ToLower(p.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Visibility != "" && p.Visibility != f.Visibility {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinArea != nil && p.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && p.Area > *f.MaxArea {
		return false
	}
	return true
}

// Apply filters items, preserving their order. It never re-sorts: the store's
// natural most-recent-first order is the display order.
func Apply(items []models.Property, f Filter) []models.Property {
	out := make([]models.Property, 0, len(items))
	for _, p := range items {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// Page is a pagination request.
type Page struct {
	Page  int
	Limit int
}

// Normalize replaces non-positive values with defaults and caps the limit.
func (pg Page) Normalize() Page {
	if pg.Page < 1 {
		pg.Page = DefaultPage
	}
	if pg.Limit < 1 {
		pg.Limit = DefaultLimit
	}
	if pg.Limit > MaxLimit {
		pg.Limit = MaxLimit
	}
	return pg
}

// Result is the enveloped response shape for paginated queries. Total is the
// pre-pagination match count so callers can compute ceil(total/limit).
type Result struct {
	Items []models.Property `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// Paginate slices one page out of the already-filtered items. Pages beyond
// the end yield an empty items slice with the total unchanged.
func Paginate(items []models.Property, pg Page) Result {
	pg = pg.Normalize()
	total := len(items)

	// Guard before multiplying: a huge page number would overflow the start
	// offset. Any page past the last one is the same empty page.
	if pg.Page > total/pg.Limit+1 {
		return Result{Items: []models.Property{}, Total: total, Page: pg.Page, Limit: pg.Limit}
	}

	start := (pg.Page - 1) * pg.Limit
	end := start + pg.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]models.Property, end-start)
	copy(page, items[start:end])

	return Result{Items: page, Total: total, Page: pg.Page, Limit: pg.Limit}
}
