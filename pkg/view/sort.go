package view

import (
	"sort"
	"strings"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
)

// Sortable columns of the orders table. Sorting applies to the fetched page
// only; it never changes which page the server returns.
const (
	ColID       = "id"
	ColSubtotal = "subtotal"
	ColTax      = "tax"
	ColTotal    = "total"
	ColRate     = "rate"
	ColState    = "state"
	ColCounty   = "county"
	ColCity     = "city"
	ColDate     = "date"
)

// SortOrders returns a sorted copy of the page. Unknown columns leave the
// server order untouched; dir is "desc" or anything-else-means-asc.
func SortOrders(orders []counter.Order, col, dir string) []counter.Order {
	out := append([]counter.Order(nil), orders...)

	var less func(a, b counter.Order) bool
	switch col {
	case ColID:
		less = func(a, b counter.Order) bool { return a.ID < b.ID }
	case ColSubtotal:
		less = func(a, b counter.Order) bool { return a.Subtotal < b.Subtotal }
	case ColTax:
		less = func(a, b counter.Order) bool { return a.TaxAmount < b.TaxAmount }
	case ColTotal:
		less = func(a, b counter.Order) bool { return a.TotalAmount < b.TotalAmount }
	case ColRate:
		less = func(a, b counter.Order) bool { return a.CompositeTaxRate < b.CompositeTaxRate }
	case ColState:
		less = stringLess(func(o counter.Order) string { return o.State })
	case ColCounty:
		less = stringLess(func(o counter.Order) string { return o.County })
	case ColCity:
		less = stringLess(func(o counter.Order) string { return o.City })
	case ColDate:
		less = stringLess(func(o counter.Order) string { return o.Timestamp })
	default:
		return out
	}

	if dir == "desc" {
		inner := less
		less = func(a, b counter.Order) bool { return inner(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func stringLess(field func(counter.Order) string) func(a, b counter.Order) bool {
	return func(a, b counter.Order) bool {
		return strings.ToLower(field(a)) < strings.ToLower(field(b))
	}
}
