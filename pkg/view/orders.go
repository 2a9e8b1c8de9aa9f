package view

import (
	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
)

type OrderRow struct {
	ID       int64
	Subtotal string
	Tax      string
	Total    string
	TaxRate  string
	State    string
	County   string
	City     string
	Date     string
}

func OrderRows(orders []counter.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderRow{
			ID:       o.ID,
			Subtotal: FormatCurrency(o.Subtotal),
			Tax:      FormatCurrency(o.TaxAmount),
			Total:    FormatCurrency(o.TotalAmount),
			TaxRate:  FormatRate(o.CompositeTaxRate),
			State:    o.State,
			County:   o.County,
			City:     o.City,
			Date:     FormatOrderDate(o.Timestamp),
		})
	}
	return rows
}

// Chip is one applied filter shown above the table.
type Chip struct {
	Key   string
	Label string
	Value string
}

var filterLabels = map[string]string{
	querystate.KeyFromTimestamp: "From date",
	querystate.KeyToTimestamp:   "To date",
	querystate.KeyMinSubtotal:   "Min subtotal",
	querystate.KeyMaxSubtotal:   "Max subtotal",
	querystate.KeyMinTotal:      "Min total",
	querystate.KeyMaxTotal:      "Max total",
	querystate.KeyState:         "State",
	querystate.KeyCounty:        "County",
	querystate.KeyCity:          "City",
}

func FilterChips(f querystate.Filters) []Chip {
	var chips []Chip
	for _, key := range querystate.FilterKeys {
		if !f.Has(key) {
			continue
		}
		chips = append(chips, Chip{
			Key:   key,
			Label: filterLabels[key],
			Value: chipValue(f, key),
		})
	}
	return chips
}

func chipValue(f querystate.Filters, key string) string {
	switch key {
	case querystate.KeyFromTimestamp:
		return FormatOrderDate(f.FromTimestamp)
	case querystate.KeyToTimestamp:
		return FormatOrderDate(f.ToTimestamp)
	case querystate.KeyMinSubtotal:
		return FormatCurrency(*f.MinSubtotal)
	case querystate.KeyMaxSubtotal:
		return FormatCurrency(*f.MaxSubtotal)
	case querystate.KeyMinTotal:
		return FormatCurrency(*f.MinTotal)
	case querystate.KeyMaxTotal:
		return FormatCurrency(*f.MaxTotal)
	case querystate.KeyState:
		return f.State
	case querystate.KeyCounty:
		return f.County
	case querystate.KeyCity:
		return f.City
	}
	return ""
}

// OrdersListPage is everything the list page template needs.
type OrdersListPage struct {
	Params  querystate.Params
	Draft   querystate.FiltersDraft
	Chips   []Chip
	Rows    []OrderRow
	Count   int
	NumPages int
	SortCol string
	SortDir string

	// Stale + LoadError: the fetch failed but a cached page is shown.
	// LoadError alone: nothing to show at all.
	Stale     bool
	LoadError string
}

// CreateOrderPage backs the create form, including re-renders after
// validation or API failures.
type CreateOrderPage struct {
	Latitude  string
	Longitude string
	Subtotal  string
	OrderDate string

	Errors   map[string]string
	APIError string

	PickerSession string
}

type ImportPage struct {
	MaxBytes int64
}
