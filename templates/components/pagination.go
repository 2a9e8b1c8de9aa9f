package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

func Pagination(p view.OrdersListPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<div class=\"pagination-bar\">\n")

		h.F("<span class=\"result-count\">%d orders</span>\n", p.Count)

		// One page needs no page links; the count and size select still show.
		if p.NumPages > 1 {
			h.Raw("<nav class=\"pagination\">")
			if p.Params.Page > 1 {
				pageLink(h, p, p.Params.Page-1, "Previous", "page-prev")
			}
			for _, n := range view.PageWindow(p.Params.Page, p.NumPages) {
				if n == p.Params.Page {
					h.F("<span class=\"page-current\">%d</span>", n)
					continue
				}
				pageLink(h, p, n, strconv.Itoa(n), "")
			}
			if p.Params.Page < p.NumPages {
				pageLink(h, p, p.Params.Page+1, "Next", "page-next")
			}
			h.Raw("</nav>\n")
		}

		// Page size select submits on change; changing it keeps the page.
		h.Raw("<form class=\"page-size\" method=\"get\" action=\"/orders\">")
		for k, vs := range p.Params.Values() {
			if k == "pageSize" {
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
		if p.SortCol != "" {
			h.Raw("<input type=\"hidden\" name=\"sort\" value=\"")
			h.Esc(p.SortCol)
			h.Raw("\"><input type=\"hidden\" name=\"dir\" value=\"")
			h.Esc(p.SortDir)
			h.Raw("\">")
		}
		h.Raw("<label>Per page <select name=\"pageSize\" onchange=\"this.form.submit()\">")
		for _, opt := range querystate.PageSizeOptions {
			sel := ""
			if opt == p.Params.PageSize {
				sel = " selected"
			}
			h.F("<option value=\"%d\"%s>%d</option>", opt, sel, opt)
		}
		h.Raw("</select></label></form>\n")

		h.Raw("</div>\n")
		return h.Err()
	})
}

func pageLink(h *shared.HTML, p view.OrdersListPage, page int, label, class string) {
	h.Raw("<a")
	if class != "" {
		h.Raw(" class=\"" + class + "\"")
	}
	h.Raw(" href=\"")
	h.Esc(view.PageURL(p.Params, page, p.SortCol, p.SortDir))
	h.Raw("\">")
	h.Esc(label)
	h.Raw("</a>")
}
