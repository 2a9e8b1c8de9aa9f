package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/draftcookie"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/flash"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/render"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/pages"
)

const msgListFailed = "Could not load orders from the API."

type OrdersHandler struct {
	API    *counter.Client
	Cache  *counter.CachedLister
	Flash  *flash.Codec
	Draft  *draftcookie.Codec
	Picker *picker.Sessions
	Log    *slog.Logger
}

func NewOrdersHandler(api *counter.Client, cache *counter.CachedLister, fl *flash.Codec, draft *draftcookie.Codec, sessions *picker.Sessions, log *slog.Logger) *OrdersHandler {
	return &OrdersHandler{API: api, Cache: cache, Flash: fl, Draft: draft, Picker: sessions, Log: log}
}

// List renders the orders table. The URL query is the whole list state, so
// reloading or sharing the link reproduces the same view.
func (h *OrdersHandler) List(c *gin.Context) {
	p := querystate.Parse(c.Request.URL.Query())
	sortCol, sortDir := sortParams(c)

	page := view.OrdersListPage{
		Params:  p,
		Chips:   view.FilterChips(p.Filters),
		SortCol: sortCol,
		SortDir: sortDir,
	}

	// Unapplied panel edits live in the draft cookie; without one the panel
	// mirrors what is currently applied.
	if d, ok := h.Draft.Get(c); ok {
		page.Draft = d
	} else {
		page.Draft = querystate.DraftFromFilters(p.Filters)
	}

	resp, stale, err := h.Cache.Get(c.Request.Context(), p)
	if err != nil {
		h.Log.LogAttrs(c.Request.Context(), slog.LevelError, "orders_list_fetch_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Bool("stale_fallback", stale),
			slog.Any("err", err),
		)
		page.LoadError = msgListFailed
		page.Stale = stale
	}
	if resp != nil {
		page.Rows = view.OrderRows(view.SortOrders(resp.Results, sortCol, sortDir))
		page.Count = resp.Count
		page.NumPages = resp.NumPages
	}

	render.Component(c, http.StatusOK, pages.OrdersList(page, middleware.GetFlash(c)))
}

func sortParams(c *gin.Context) (col, dir string) {
	col = c.Query("sort")
	dir = c.Query("dir")
	if dir != "desc" {
		dir = "asc"
	}
	return col, dir
}
