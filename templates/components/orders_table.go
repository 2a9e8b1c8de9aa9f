// Package components holds the page fragments the admin pages compose:
// the orders table, the filter panel with its applied chips, and the
// pagination controls.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

var tableColumns = []struct {
	col   string
	label string
}{
	{view.ColID, "ID"},
	{view.ColSubtotal, "Subtotal"},
	{view.ColTax, "Tax"},
	{view.ColTotal, "Total"},
	{view.ColRate, "Tax rate"},
	{view.ColState, "State"},
	{view.ColCounty, "County"},
	{view.ColCity, "City"},
	{view.ColDate, "Date"},
}

func OrdersTable(p view.OrdersListPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)

		if len(p.Rows) == 0 {
			h.Raw("<p class=\"empty-state\">No orders found.</p>\n")
			return h.Err()
		}

		h.Raw("<table class=\"orders-table\">\n<thead><tr>")
		for _, c := range tableColumns {
			href := view.SortURL(p.Params, c.col, p.SortCol, p.SortDir)
			h.Raw("<th><a href=\"")
			h.Esc(href)
			h.Raw("\">")
			h.Esc(c.label)
			h.Esc(view.SortMarker(c.col, p.SortCol, p.SortDir))
			h.Raw("</a></th>")
		}
		h.Raw("</tr></thead>\n<tbody>\n")

		for _, r := range p.Rows {
			h.F("<tr><td>%d</td>", r.ID)
			for _, cell := range []string{r.Subtotal, r.Tax, r.Total, r.TaxRate, r.State, r.County, r.City, r.Date} {
				h.Raw("<td>")
				h.Esc(cell)
				h.Raw("</td>")
			}
			h.Raw("</tr>\n")
		}

		h.Raw("</tbody>\n</table>\n")
		return h.Err()
	})
}
