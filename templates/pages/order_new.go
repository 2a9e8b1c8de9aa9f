package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/shared"
)

const (
	leafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

func OrderNew(p view.CreateOrderPage, flash *view.Flash) templ.Component {
	head := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<link rel=\"stylesheet\" href=\"" + leafletCSS + "\">\n")
		h.Raw("<script defer src=\"" + leafletJS + "\"></script>\n")
		h.Raw("<script defer src=\"/static/js/picker.js\"></script>\n")
		return h.Err()
	})

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := shared.NewHTML(w)
		h.Raw("<h1>Create order</h1>\n")

		if p.APIError != "" {
			h.Raw("<div class=\"flash flash-error\" role=\"alert\">")
			h.Esc(p.APIError)
			h.Raw("</div>\n")
		}

		h.Raw("<div class=\"order-form-grid\">\n")

		h.Raw("<form class=\"order-form\" method=\"post\" action=\"/orders\">\n")
		h.Raw("<input type=\"hidden\" id=\"picker-session\" name=\"pickerSession\" value=\"")
		h.Esc(p.PickerSession)
		h.Raw("\">\n")

		field(h, fieldSpec{
			Name: "latitude", ID: "field-lat", Label: "Latitude",
			Type: "text", Value: p.Latitude, Error: p.Errors["latitude"],
			Attrs: " inputmode=\"decimal\" autocomplete=\"off\"",
		})
		field(h, fieldSpec{
			Name: "longitude", ID: "field-lng", Label: "Longitude",
			Type: "text", Value: p.Longitude, Error: p.Errors["longitude"],
			Attrs: " inputmode=\"decimal\" autocomplete=\"off\"",
		})
		field(h, fieldSpec{
			Name: "subtotal", ID: "field-subtotal", Label: "Subtotal",
			Type: "number", Value: p.Subtotal, Error: p.Errors["subtotal"],
			Attrs: " step=\"0.01\" min=\"0\"",
		})
		field(h, fieldSpec{
			Name: "orderDate", ID: "field-date", Label: "Order date (optional)",
			Type: "date", Value: p.OrderDate, Error: p.Errors["orderDate"],
		})
		if msg, ok := p.Errors["_"]; ok {
			h.Raw("<p class=\"field-error\" role=\"alert\">")
			h.Esc(msg)
			h.Raw("</p>\n")
		}

		h.Raw("<button type=\"submit\">Create order</button>\n</form>\n")

		// Map pane: address search plus a click-to-pick Leaflet map.
		h.Raw("<div class=\"map-pane\">\n")
		h.F("<input type=\"search\" id=\"map-search\" placeholder=\"Search for a location\" minlength=\"%d\" autocomplete=\"off\">\n", picker.MinQueryLength)
		h.Raw("<p id=\"map-status\" class=\"map-status\" role=\"status\" hidden></p>\n")
		h.F("<div id=\"map\" data-lat=\"%g\" data-lng=\"%g\" data-zoom=\"%d\"></div>\n",
			picker.DefaultCenter.Lat, picker.DefaultCenter.Lng, picker.DefaultZoom)
		h.Raw("</div>\n")

		h.Raw("</div>\n")
		return h.Err()
	})

	return shared.Layout(shared.Page{
		Title:  "Create order",
		Active: "new",
		Flash:  flash,
		Head:   head,
	}, body)
}

type fieldSpec struct {
	Name  string
	ID    string
	Label string
	Type  string
	Value string
	Error string
	Attrs string // extra raw attributes, literals only
}

func field(h *shared.HTML, f fieldSpec) {
	h.Raw("<label for=\"" + f.ID + "\">")
	h.Esc(f.Label)
	h.Raw("</label>\n")
	h.Raw("<input type=\"" + f.Type + "\" id=\"" + f.ID + "\" name=\"" + f.Name + "\"" + f.Attrs + " value=\"")
	h.Esc(f.Value)
	h.Raw("\">\n")
	if f.Error != "" {
		h.Raw("<p class=\"field-error\" role=\"alert\">")
		h.Esc(f.Error)
		h.Raw("</p>\n")
	}
}
