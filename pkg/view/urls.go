package view

import (
	"net/url"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

const ListPath = "/orders"

// SortURL builds the header link for a column. Clicking the current
// ascending column flips it to descending; anything else sorts ascending.
func SortURL(p querystate.Params, col, curCol, curDir string) string {
	dir := "asc"
	if col == curCol && curDir == "asc" {
		dir = "desc"
	}
	q := p.Values()
	q.Set("sort", col)
	q.Set("dir", dir)
	return ListPath + "?" + q.Encode()
}

// SortMarker is the direction indicator shown next to the sorted column.
func SortMarker(col, curCol, curDir string) string {
	if col != curCol {
		return ""
	}
	if curDir == "desc" {
		return " ▼"
	}
	return " ▲"
}

// PageURL links to another page of the same result set, keeping the
// page-local sort in the URL.
func PageURL(p querystate.Params, page int, sortCol, sortDir string) string {
	return withSort(p.WithPage(page).Values(), sortCol, sortDir)
}

// PageSizeURL links to the same state with a different page size.
func PageSizeURL(p querystate.Params, size int, sortCol, sortDir string) string {
	return withSort(p.WithPageSize(size).Values(), sortCol, sortDir)
}

// RemoveChipURL links a chip's remove button to the filter-removal
// endpoint, carrying the full current state. The handler drops the key
// from both the applied filters and the saved draft.
func RemoveChipURL(p querystate.Params, key, sortCol, sortDir string) string {
	q := p.Values()
	if sortCol != "" {
		q.Set("sort", sortCol)
		if sortDir != "" {
			q.Set("dir", sortDir)
		}
	}
	path := "/orders/filters/remove/" + url.PathEscape(key)
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// ResetURL clears search and filters but keeps the page size.
func ResetURL(p querystate.Params) string {
	return p.Reset().URL(ListPath)
}

func withSort(q url.Values, sortCol, sortDir string) string {
	if sortCol != "" {
		q.Set("sort", sortCol)
		if sortDir != "" {
			q.Set("dir", sortDir)
		}
	}
	enc := q.Encode()
	if enc == "" {
		return ListPath
	}
	return ListPath + "?" + enc
}

// PageWindow picks which page numbers the pagination shows: the current
// page with two neighbours each side, clamped to the real range.
func PageWindow(current, numPages int) []int {
	if numPages < 1 {
		numPages = 1
	}
	lo := current - 2
	if lo < 1 {
		lo = 1
	}
	hi := lo + 4
	if hi > numPages {
		hi = numPages
		if lo = hi - 4; lo < 1 {
			lo = 1
		}
	}
	pages := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		pages = append(pages, n)
	}
	return pages
}
