// Package querystate owns the list-page query parameters (search text, page,
// page size, applied filters) and their URL representation. Handlers never
// mutate a Params in place; they derive the next state through the With*
// transitions and redirect to its encoded form, so the URL stays the single
// source of truth.
package querystate

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	defaultPage     = 1
)

// PageSizeOptions mirrors the select on the list page.
var PageSizeOptions = []int{10, 20, 50, 100, 200}

type Params struct {
	Search   string
	Page     int
	PageSize int
	Filters  Filters
}

func Default() Params {
	return Params{Page: defaultPage, PageSize: DefaultPageSize}
}

// Parse reads the list-page state from URL query values. Unknown or
// malformed values fall back to defaults instead of failing the request.
func Parse(q url.Values) Params {
	p := Default()
	p.Search = strings.TrimSpace(q.Get("search"))

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && validPageSize(n) {
		p.PageSize = n
	}

	p.Filters = parseFilters(q)
	return p
}

// Values encodes the state back into URL query values, omitting defaults so
// shared links stay short.
func (p Params) Values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize != DefaultPageSize && validPageSize(p.PageSize) {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	p.Filters.encode(q)
	return q
}

// URL renders the list page path with the encoded state.
func (p Params) URL(path string) string {
	enc := p.Values().Encode()
	if enc == "" {
		return path
	}
	return path + "?" + enc
}

// Changing the search always restarts from page 1.
func (p Params) WithSearch(search string) Params {
	p.Search = strings.TrimSpace(search)
	p.Page = 1
	return p
}

// Applying filters always restarts from page 1.
func (p Params) WithFilters(f Filters) Params {
	p.Filters = f
	p.Page = 1
	return p
}

func (p Params) WithPage(page int) Params {
	if page < 1 {
		page = 1
	}
	p.Page = page
	return p
}

func (p Params) WithPageSize(size int) Params {
	if validPageSize(size) {
		p.PageSize = size
	}
	return p
}

// Reset clears search and filters and returns to the first page. The page
// size survives a reset.
func (p Params) Reset() Params {
	p.Search = ""
	p.Filters = Filters{}
	p.Page = 1
	return p
}

func validPageSize(n int) bool {
	for _, opt := range PageSizeOptions {
		if n == opt {
			return true
		}
	}
	return false
}
