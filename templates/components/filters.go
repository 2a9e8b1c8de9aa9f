package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

// FilterChips shows the applied filters above the table. Each chip removes
// just its own filter and leaves the rest applied.
func FilterChips(p view.OrdersListPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(p.Chips) == 0 {
			return nil
		}
		h := shared.NewHTML(w)
		h.Raw("<div class=\"filter-chips\">")
		for _, chip := range p.Chips {
			h.Raw("<span class=\"chip\">")
			h.Esc(chip.Label)
			h.Raw(": <strong>")
			h.Esc(chip.Value)
			h.Raw("</strong> <a class=\"chip-remove\" aria-label=\"Remove filter\" href=\"")
			h.Esc(view.RemoveChipURL(p.Params, chip.Key, p.SortCol, p.SortDir))
			h.Raw("\">&times;</a></span>")
		}
		h.Raw("<a class=\"chips-clear\" href=\"")
		h.Esc(view.ResetURL(p.Params))
		h.Raw("\">Clear all</a>")
		h.Raw("</div>\n")
		return h.Err()
	})
}

type filterField struct {
	name  string
	label string
	typ   string // input type
	value func(d *view.OrdersListPage) string
}

var filterFields = []filterField{
	{"fromDate", "From date", "date", func(p *view.OrdersListPage) string { return p.Draft.FromDate }},
	{"toDate", "To date", "date", func(p *view.OrdersListPage) string { return p.Draft.ToDate }},
	{"minSubtotal", "Min subtotal", "number", func(p *view.OrdersListPage) string { return p.Draft.MinSubtotal }},
	{"maxSubtotal", "Max subtotal", "number", func(p *view.OrdersListPage) string { return p.Draft.MaxSubtotal }},
	{"minTotal", "Min total", "number", func(p *view.OrdersListPage) string { return p.Draft.MinTotal }},
	{"maxTotal", "Max total", "number", func(p *view.OrdersListPage) string { return p.Draft.MaxTotal }},
	{"state", "State", "text", func(p *view.OrdersListPage) string { return p.Draft.State }},
	{"county", "County", "text", func(p *view.OrdersListPage) string { return p.Draft.County }},
	{"city", "City", "text", func(p *view.OrdersListPage) string { return p.Draft.City }},
}

// FiltersPanel is the draft form. Edits live in the draft (persisted in a
// cookie) and only touch the table when Apply is pressed.
func FiltersPanel(p view.OrdersListPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<details class=\"filters-panel\"")
		if !p.Draft.IsZero() || len(p.Chips) > 0 {
			h.Raw(" open")
		}
		h.Raw("><summary>Filters</summary>\n")

		// The current list state rides in the action's query string so the
		// apply redirect can keep search and page size.
		h.Raw("<form method=\"post\" action=\"")
		h.Esc(p.Params.URL("/orders/filters"))
		h.Raw("\">\n")

		h.Raw("<div class=\"filter-grid\">\n")
		for _, f := range filterFields {
			h.Raw("<label>")
			h.Esc(f.label)
			h.Raw("<input type=\"" + f.typ + "\" name=\"" + f.name + "\"")
			if f.typ == "number" {
				h.Raw(" step=\"0.01\" min=\"0\"")
			}
			h.Raw(" value=\"")
			h.Esc(f.value(&p))
			h.Raw("\"></label>\n")
		}
		h.Raw("</div>\n")

		h.Raw("<div class=\"filter-actions\">")
		h.Raw("<button type=\"submit\">Apply</button>")
		h.Raw("<button type=\"submit\" formaction=\"")
		h.Esc(p.Params.URL("/orders/filters/reset"))
		h.Raw("\">Reset</button>")
		h.Raw("</div>\n</form>\n</details>\n")
		return h.Err()
	})
}
