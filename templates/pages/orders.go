// Package pages holds the full screens of the admin panel, each wrapped in
// the shared layout.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/components"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

func OrdersList(p view.OrdersListPage, flash *view.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<h1>Orders</h1>\n")

		if p.LoadError != "" {
			retry := " <a href=\"" + templ.EscapeString(p.Params.URL("/orders")) + "\">Retry</a>"
			if p.Stale {
				h.Raw("<div class=\"flash flash-warning\" role=\"status\">")
				h.Esc(p.LoadError)
				h.Raw(" Showing previously loaded results." + retry + "</div>\n")
			} else {
				h.Raw("<div class=\"flash flash-error\" role=\"alert\">")
				h.Esc(p.LoadError)
				h.Raw(retry + "</div>\n")
			}
		}

		// Search submits as GET so the state lands in the URL.
		// No hidden page input: a new search starts from page 1.
		h.Raw("<form class=\"search-bar\" method=\"get\" action=\"/orders\" role=\"search\">\n")
		for k, vs := range p.Params.Values() {
			if k == "search" || k == "page" {
				continue
			}
			for _, v := range vs {
				h.Raw("<input type=\"hidden\" name=\"")
				h.Esc(k)
				h.Raw("\" value=\"")
				h.Esc(v)
				h.Raw("\">")
			}
		}
		h.Raw("<input type=\"search\" name=\"search\" placeholder=\"Search orders\" value=\"")
		h.Esc(p.Params.Search)
		h.Raw("\">\n<button type=\"submit\">Search</button>\n</form>\n")
		if h.Err() != nil {
			return h.Err()
		}

		if err := components.FiltersPanel(p).Render(ctx, w); err != nil {
			return err
		}
		if err := components.FilterChips(p).Render(ctx, w); err != nil {
			return err
		}
		if err := components.OrdersTable(p).Render(ctx, w); err != nil {
			return err
		}
		if len(p.Rows) > 0 {
			if err := components.Pagination(p).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})

	head := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<script defer src=\"/static/js/filters.js\"></script>\n")
		return h.Err()
	})

	return shared.Layout(shared.Page{
		Title:  "Orders",
		Active: "orders",
		Flash:  flash,
		Head:   head,
	}, body)
}
