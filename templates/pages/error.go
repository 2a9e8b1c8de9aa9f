package pages

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

func Error(status int, msg, requestID string, flash *view.Flash) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.F("<h1>%d %s</h1>\n", status, templ.EscapeString(http.StatusText(status)))
		h.Raw("<p>")
		h.Esc(msg)
		h.Raw("</p>\n")
		if requestID != "" {
			h.Raw("<p class=\"hint\">Request ID: ")
			h.Esc(requestID)
			h.Raw("</p>\n")
		}
		h.Raw("<p><a href=\"/orders\">Back to orders</a></p>\n")
		return h.Err()
	})

	return shared.Layout(shared.Page{
		Title: "Error",
		Flash: flash,
	}, body)
}
