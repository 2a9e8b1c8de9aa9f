package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

func Import(p view.ImportPage, flash *view.Flash) templ.Component {
	head := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<script defer src=\"/static/js/import.js\"></script>\n")
		return h.Err()
	})

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<h1>Import orders</h1>\n")
		h.F("<p class=\"hint\">Upload a CSV file of orders. Maximum size %d MB.</p>\n", p.MaxBytes/(1<<20))

		h.F("<form id=\"import-form\" method=\"post\" action=\"/import\" enctype=\"multipart/form-data\" data-max-bytes=\"%d\">\n", p.MaxBytes)
		h.Raw("<input type=\"file\" id=\"import-file\" name=\"orders_file\" accept=\".csv,text/csv\" required>\n")
		h.Raw("<button type=\"submit\" id=\"import-submit\">Import</button>\n")
		h.Raw("</form>\n")

		h.Raw("<div id=\"import-progress\" class=\"import-progress\" hidden>\n")
		h.Raw("<progress id=\"import-bar\" max=\"100\" value=\"0\"></progress>\n")
		h.Raw("<p id=\"import-status\" role=\"status\"></p>\n")
		h.Raw("</div>\n")
		return h.Err()
	})

	return shared.Layout(shared.Page{
		Title:  "Import orders",
		Active: "import",
		Flash:  flash,
		Head:   head,
	}, body)
}
