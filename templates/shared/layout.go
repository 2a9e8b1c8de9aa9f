package shared

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
)

// Page carries what every page hands to the layout.
type Page struct {
	Title  string
	Active string // nav highlight: "orders", "new", "import"
	Flash  *view.Flash
	Head   templ.Component // optional extra <head> tags (map assets etc.)
}

var navItems = []struct {
	key   string
	href  string
	label string
}{
	{"orders", "/orders", "Orders"},
	{"new", "/orders/new", "Create order"},
	{"import", "/import", "Import"},
}

func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw("<!doctype html>\n<html lang=\"en\">\n<head>\n")
		h.Raw("<meta charset=\"utf-8\">\n")
		h.Raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		h.Raw("<title>")
		h.Esc(p.Title)
		h.Raw(" · Orders Admin</title>\n")
		h.Raw("<link rel=\"stylesheet\" href=\"/static/css/app.css\">\n")
		if h.Err() != nil {
			return h.Err()
		}
		if p.Head != nil {
			if err := p.Head.Render(ctx, w); err != nil {
				return err
			}
		}
		h.Raw("</head>\n<body>\n")

		h.Raw("<header class=\"topbar\"><div class=\"topbar-inner\">")
		h.Raw("<a class=\"brand\" href=\"/orders\">Orders Admin</a><nav>")
		for _, it := range navItems {
			cls := "nav-link"
			if it.key == p.Active {
				cls = "nav-link active"
			}
			h.F("<a class=%q href=%q>", cls, it.href)
			h.Esc(it.label)
			h.Raw("</a>")
		}
		h.Raw("</nav></div></header>\n")

		h.Raw("<main class=\"container\">\n")
		FlashBanner(h, p.Flash)
		if h.Err() != nil {
			return h.Err()
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.Raw("\n</main>\n</body>\n</html>\n")
		return h.Err()
	})
}

// FlashBanner renders the one-shot message, if any.
func FlashBanner(h *HTML, f *view.Flash) {
	if f == nil || f.Message == "" {
		return
	}
	h.F("<div class=\"flash flash-%s\" role=\"status\">", f.Kind)
	h.Esc(f.Message)
	h.Raw("</div>\n")
}
